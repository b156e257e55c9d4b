package handler

import (
	"strconv"
	"strings"

	"Moodgraph/pkg/context"
	"Moodgraph/pkg/response"
	"Moodgraph/service"
	"Moodgraph/types"

	"github.com/gin-gonic/gin"
)

type Note struct {
	NoteService service.INoteService
	Storage     service.IStorage
}

func (h *Note) RegisterRouter(r gin.IRouter) {
	r.GET("/api/boards/:id/notes", context.Wrap(h.ListNotes))
	r.POST("/api/boards/:id/notes", context.Wrap(h.CreateNote))
	r.PUT("/api/notes/:id", context.Wrap(h.UpdateNote))
	r.DELETE("/api/notes/:id", context.Wrap(h.DeleteNote))
	r.POST("/api/upload", context.Wrap(h.UploadImage))
}

func (h *Note) ListNotes(c *gin.Context) error {
	boardID, err := pathID(c)
	if err != nil {
		return err
	}
	notes, err := h.NoteService.ListNotes(c.Request.Context(), boardID)
	if err != nil {
		return err
	}
	response.Success(c, notes)
	return nil
}

// CreateNote 支持 multipart（带图片文件）和 JSON 两种提交方式
func (h *Note) CreateNote(c *gin.Context) error {
	boardID, err := pathID(c)
	if err != nil {
		return err
	}

	var req types.CreateNoteRequest
	if isMultipart(c) {
		req = types.CreateNoteRequest{
			Title:     c.PostForm("title"),
			Content:   c.PostForm("content"),
			ImageURL:  c.PostForm("image_url"),
			Color:     c.PostForm("color"),
			PositionX: formFloat(c, "position_x"),
			PositionY: formFloat(c, "position_y"),
			Width:     formInt(c, "width"),
			Height:    formInt(c, "height"),
		}
		imageURL, err := h.saveUploadedImage(c)
		if err != nil {
			return err
		}
		if imageURL != "" {
			req.ImageURL = imageURL
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			return response.NewValidationError(err.Error())
		}
	}

	note, err := h.NoteService.CreateNote(c.Request.Context(), boardID, &req)
	if err != nil {
		return err
	}
	response.Created(c, note)
	return nil
}

// UpdateNote 部分更新，multipart 表单里没出现的字段保持原值
// 拖拽提交位置走 JSON，只带 position_x / position_y
func (h *Note) UpdateNote(c *gin.Context) error {
	noteID, err := pathID(c)
	if err != nil {
		return err
	}

	var req types.UpdateNoteRequest
	if isMultipart(c) {
		req = formUpdateRequest(c)
		imageURL, err := h.saveUploadedImage(c)
		if err != nil {
			return err
		}
		if imageURL != "" {
			req.ImageURL = &imageURL
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			return response.NewValidationError(err.Error())
		}
	}

	note, err := h.NoteService.UpdateNote(c.Request.Context(), noteID, &req)
	if err != nil {
		return err
	}
	response.Success(c, note)
	return nil
}

func (h *Note) DeleteNote(c *gin.Context) error {
	noteID, err := pathID(c)
	if err != nil {
		return err
	}
	if _, err := h.NoteService.DeleteNote(c.Request.Context(), noteID); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}

// UploadImage 独立图片上传，返回可访问 URL 和像素尺寸
func (h *Note) UploadImage(c *gin.Context) error {
	header, err := c.FormFile("image")
	if err != nil {
		return response.NewValidationError("missing image")
	}

	width, height, err := service.ValidateImage(header)
	if err != nil {
		return response.NewValidationError(err.Error())
	}

	url, err := h.Storage.SaveImage(c.Request.Context(), header)
	if err != nil {
		return response.NewPersistenceError(err.Error())
	}

	response.Success(c, types.UploadResponse{Key: url, Width: width, Height: height})
	return nil
}

// 表单里带了 image 文件就校验并保存，没带返回空串
func (h *Note) saveUploadedImage(c *gin.Context) (string, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	if _, _, err := service.ValidateImage(header); err != nil {
		return "", response.NewValidationError(err.Error())
	}
	url, err := h.Storage.SaveImage(c.Request.Context(), header)
	if err != nil {
		return "", response.NewPersistenceError(err.Error())
	}
	return url, nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func formUpdateRequest(c *gin.Context) types.UpdateNoteRequest {
	var req types.UpdateNoteRequest
	if v, ok := c.GetPostForm("title"); ok {
		req.Title = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		req.Content = &v
	}
	if v, ok := c.GetPostForm("image_url"); ok {
		req.ImageURL = &v
	}
	if v, ok := c.GetPostForm("color"); ok {
		req.Color = &v
	}
	if v, ok := c.GetPostForm("position_x"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.PositionX = &f
		}
	}
	if v, ok := c.GetPostForm("position_y"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.PositionY = &f
		}
	}
	if v, ok := c.GetPostForm("width"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			req.Width = &n
		}
	}
	if v, ok := c.GetPostForm("height"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			req.Height = &n
		}
	}
	return req
}

func formFloat(c *gin.Context, key string) float64 {
	f, _ := strconv.ParseFloat(c.PostForm(key), 64)
	return f
}

func formInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.PostForm(key))
	return n
}
