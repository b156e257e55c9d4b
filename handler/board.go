package handler

import (
	"strconv"

	"Moodgraph/pkg/context"
	"Moodgraph/pkg/response"
	"Moodgraph/service"
	"Moodgraph/types"

	"github.com/gin-gonic/gin"
)

type Board struct {
	BoardService service.IBoardService
}

func (h *Board) RegisterRouter(r gin.IRouter) {
	g := r.Group("/api/boards")
	g.GET("", context.Wrap(h.ListBoards))
	g.POST("", context.Wrap(h.CreateBoard))
	g.GET("/:id", context.Wrap(h.GetBoard))
	g.PUT("/:id", context.Wrap(h.UpdateBoard))
	g.DELETE("/:id", context.Wrap(h.DeleteBoard))
	g.GET("/:id/presence", context.Wrap(h.Presence))
}

func (h *Board) ListBoards(c *gin.Context) error {
	boards, err := h.BoardService.ListBoards(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, boards)
	return nil
}

func (h *Board) GetBoard(c *gin.Context) error {
	boardID, err := pathID(c)
	if err != nil {
		return err
	}
	board, err := h.BoardService.GetBoard(c.Request.Context(), boardID)
	if err != nil {
		return err
	}
	response.Success(c, board)
	return nil
}

func (h *Board) CreateBoard(c *gin.Context) error {
	var req types.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewValidationError(err.Error())
	}

	board, err := h.BoardService.CreateBoard(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, board)
	return nil
}

func (h *Board) UpdateBoard(c *gin.Context) error {
	boardID, err := pathID(c)
	if err != nil {
		return err
	}

	var req types.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewValidationError(err.Error())
	}

	board, err := h.BoardService.UpdateBoard(c.Request.Context(), boardID, &req)
	if err != nil {
		return err
	}
	response.Success(c, board)
	return nil
}

func (h *Board) DeleteBoard(c *gin.Context) error {
	boardID, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.BoardService.DeleteBoard(c.Request.Context(), boardID); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}

func (h *Board) Presence(c *gin.Context) error {
	boardID, err := pathID(c)
	if err != nil {
		return err
	}
	viewers, err := h.BoardService.Viewers(c.Request.Context(), boardID)
	if err != nil {
		return err
	}
	response.Success(c, types.PresenceResponse{BoardID: boardID, Viewers: viewers})
	return nil
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.NewValidationError("invalid id")
	}
	return id, nil
}
