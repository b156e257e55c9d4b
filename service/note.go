package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Moodgraph/dao"
	"Moodgraph/models"
	"Moodgraph/pkg/llm"
	"Moodgraph/pkg/response"
	"Moodgraph/types"

	"gorm.io/gorm"
)

var _ INoteService = (*NoteService)(nil)

type INoteService interface {
	ListNotes(ctx context.Context, boardID int64) ([]*models.Note, error)
	CreateNote(ctx context.Context, boardID int64, req *types.CreateNoteRequest) (*models.Note, error)
	UpdateNote(ctx context.Context, noteID int64, req *types.UpdateNoteRequest) (*models.Note, error)
	DeleteNote(ctx context.Context, noteID int64) (*models.Note, error)
	GenerateImage(ctx context.Context, noteID int64, prompt string) (*models.Note, error)
}

type NoteService struct {
	NoteDAO   *dao.NoteDAO
	BoardDAO  *dao.BoardDAO
	Generator *llm.Generator
}

// ListNotes 按创建时间倒序返回看板下的便签
// 不校验看板是否存在，已删除看板的便签列表就是空列表
func (s *NoteService) ListNotes(ctx context.Context, boardID int64) ([]*models.Note, error) {
	notes, err := s.NoteDAO.FindByBoardID(ctx, boardID)
	if err != nil {
		return nil, response.NewPersistenceError(err.Error())
	}
	if notes == nil {
		// 空集合序列化成 [] 而不是 null
		notes = []*models.Note{}
	}
	return notes, nil
}

// CreateNote 创建便签，空内容/空图片也是合法的空便签
func (s *NoteService) CreateNote(ctx context.Context, boardID int64, req *types.CreateNoteRequest) (*models.Note, error) {
	if err := s.checkBoard(ctx, boardID); err != nil {
		return nil, err
	}

	note := &models.Note{
		BoardID:   boardID,
		Title:     req.Title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		PositionX: req.PositionX,
		PositionY: req.PositionY,
		Color:     req.Color,
		Width:     req.Width,
		Height:    req.Height,
	}
	if note.Color == "" {
		note.Color = "#fef08a"
	}
	if note.Width == 0 {
		note.Width = 200
	}
	if note.Height == 0 {
		note.Height = 200
	}

	if err := s.NoteDAO.Create(ctx, note); err != nil {
		return nil, response.NewPersistenceError(err.Error())
	}

	s.touchBoard(ctx, boardID)
	return note, nil
}

// UpdateNote 部分更新，nil 字段保持原值
func (s *NoteService) UpdateNote(ctx context.Context, noteID int64, req *types.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.findNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.ImageURL != nil {
		note.ImageURL = *req.ImageURL
	}
	if req.PositionX != nil {
		note.PositionX = *req.PositionX
	}
	if req.PositionY != nil {
		note.PositionY = *req.PositionY
	}
	if req.Color != nil && *req.Color != "" {
		note.Color = *req.Color
	}
	if req.Width != nil {
		note.Width = *req.Width
	}
	if req.Height != nil {
		note.Height = *req.Height
	}

	if err := s.NoteDAO.Save(ctx, note); err != nil {
		return nil, response.NewPersistenceError(err.Error())
	}

	s.touchBoard(ctx, note.BoardID)
	return note, nil
}

// DeleteNote 删除便签，返回删除前的记录供广播负载使用
func (s *NoteService) DeleteNote(ctx context.Context, noteID int64) (*models.Note, error) {
	note, err := s.findNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if err := s.NoteDAO.DeleteById(ctx, noteID); err != nil {
		return nil, response.NewPersistenceError(err.Error())
	}

	s.touchBoard(ctx, note.BoardID)
	return note, nil
}

// GenerateImage 为便签生成配图并写回 image_url
// 未给提示词时用便签标题和正文拼一个
func (s *NoteService) GenerateImage(ctx context.Context, noteID int64, prompt string) (*models.Note, error) {
	note, err := s.findNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if prompt == "" {
		parts := make([]string, 0, 2)
		if note.Title != "" {
			parts = append(parts, note.Title)
		}
		if note.Content != "" {
			parts = append(parts, note.Content)
		}
		if len(parts) > 0 {
			prompt = fmt.Sprintf("An inspiring vision board image for: %s", strings.Join(parts, ", "))
		}
	}

	imageURL, _, err := s.Generator.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, response.NewError(502, err.Error())
	}

	note.ImageURL = imageURL
	if err := s.NoteDAO.Save(ctx, note); err != nil {
		return nil, response.NewPersistenceError(err.Error())
	}

	s.touchBoard(ctx, note.BoardID)
	return note, nil
}

func (s *NoteService) findNote(ctx context.Context, noteID int64) (*models.Note, error) {
	note, err := s.NoteDAO.FindById(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Note not found")
		}
		return nil, response.NewPersistenceError(err.Error())
	}
	return note, nil
}

func (s *NoteService) checkBoard(ctx context.Context, boardID int64) error {
	if _, err := s.BoardDAO.FindById(ctx, boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Board not found")
		}
		return response.NewPersistenceError(err.Error())
	}
	return nil
}

func (s *NoteService) touchBoard(ctx context.Context, boardID int64) {
	// 失败不阻塞主流程，下一次变更会再推一次
	_ = s.BoardDAO.TouchUpdatedAt(ctx, boardID)
}
