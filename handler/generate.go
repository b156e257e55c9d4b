package handler

import (
	"Moodgraph/pkg/context"
	"Moodgraph/pkg/llm"
	"Moodgraph/pkg/response"
	"Moodgraph/service"
	"Moodgraph/types"

	"github.com/gin-gonic/gin"
)

type Generate struct {
	Generator   *llm.Generator
	NoteService service.INoteService
}

func (h *Generate) RegisterRouter(r gin.IRouter) {
	r.POST("/api/text/generate", context.Wrap(h.GenerateText))
	r.POST("/api/images/generate", context.Wrap(h.GenerateImage))
	r.POST("/api/notes/:id/generate-image", context.Wrap(h.GenerateNoteImage))
}

func (h *Generate) GenerateText(c *gin.Context) error {
	var req types.GenerateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewValidationError(err.Error())
	}
	if req.Prompt == "" {
		return response.NewValidationError("Please provide a prompt for text generation")
	}

	text, err := h.Generator.GenerateText(c.Request.Context(), req.Prompt)
	if err != nil {
		return response.NewError(502, err.Error())
	}

	response.Success(c, types.GenerateTextResponse{Success: true, Text: text})
	return nil
}

func (h *Generate) GenerateImage(c *gin.Context) error {
	var req types.GenerateImageRequest
	// 提示词可以不给，生成器有默认的愿景板风格提示词
	_ = c.ShouldBindJSON(&req)

	imageURL, revised, err := h.Generator.GenerateImage(c.Request.Context(), req.Prompt)
	if err != nil {
		return response.NewError(502, err.Error())
	}

	response.Success(c, types.GenerateImageResponse{
		Success:       true,
		ImageURL:      imageURL,
		RevisedPrompt: revised,
	})
	return nil
}

// GenerateNoteImage 为已有便签生成配图并写回，返回更新后的记录
func (h *Generate) GenerateNoteImage(c *gin.Context) error {
	noteID, err := pathID(c)
	if err != nil {
		return err
	}

	var req types.GenerateImageRequest
	_ = c.ShouldBindJSON(&req)

	note, err := h.NoteService.GenerateImage(c.Request.Context(), noteID, req.Prompt)
	if err != nil {
		return err
	}
	response.Success(c, note)
	return nil
}
