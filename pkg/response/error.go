package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// NewValidationError 参数校验失败
func NewValidationError(msg string) *BizError {
	return NewError(http.StatusBadRequest, msg)
}

// NewNotFoundError 资源不存在
func NewNotFoundError(msg string) *BizError {
	return NewError(http.StatusNotFound, msg)
}

// NewPersistenceError 存储写入失败
func NewPersistenceError(msg string) *BizError {
	return NewError(http.StatusInternalServerError, msg)
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.JSON(http.StatusInternalServerError, Response{
					Code: 500,
					Msg:  "系统异常",
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if be, ok := err.(*BizError); ok {
				Fail(c, be.Code, be.Msg)
			} else {
				Fail(c, 500, err.Error())
			}
			c.Abort()
		}
	}
}
