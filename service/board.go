package service

import (
	"context"
	"errors"

	"Moodgraph/dao"
	"Moodgraph/dao/cache"
	"Moodgraph/models"
	"Moodgraph/pkg/response"
	"Moodgraph/types"

	"gorm.io/gorm"
)

var _ IBoardService = (*BoardService)(nil)

type IBoardService interface {
	ListBoards(ctx context.Context) ([]*models.Board, error)
	GetBoard(ctx context.Context, boardID int64) (*models.Board, error)
	CreateBoard(ctx context.Context, req *types.CreateBoardRequest) (*models.Board, error)
	UpdateBoard(ctx context.Context, boardID int64, req *types.UpdateBoardRequest) (*models.Board, error)
	DeleteBoard(ctx context.Context, boardID int64) error
	Viewers(ctx context.Context, boardID int64) (int64, error)
}

type BoardService struct {
	BoardDAO    *dao.BoardDAO
	RoomStorage *cache.RoomStorage
}

// ListBoards 按最近更新倒序返回全部看板
func (s *BoardService) ListBoards(ctx context.Context) ([]*models.Board, error) {
	boards, err := s.BoardDAO.FindAll(ctx)
	if err != nil {
		return nil, response.NewPersistenceError(err.Error())
	}
	return boards, nil
}

func (s *BoardService) GetBoard(ctx context.Context, boardID int64) (*models.Board, error) {
	board, err := s.BoardDAO.FindById(ctx, boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Board not found")
		}
		return nil, response.NewPersistenceError(err.Error())
	}
	return board, nil
}

// CreateBoard 创建看板，名称必填，分类默认 general
func (s *BoardService) CreateBoard(ctx context.Context, req *types.CreateBoardRequest) (*models.Board, error) {
	if req.Name == "" {
		return nil, response.NewValidationError("Name is required")
	}

	board := &models.Board{
		Name:     req.Name,
		Category: req.Category,
	}
	if board.Category == "" {
		board.Category = "general"
	}

	if err := s.BoardDAO.Create(ctx, board); err != nil {
		return nil, response.NewPersistenceError(err.Error())
	}
	return board, nil
}

// UpdateBoard 部分更新，未提供的字段保持原值
func (s *BoardService) UpdateBoard(ctx context.Context, boardID int64, req *types.UpdateBoardRequest) (*models.Board, error) {
	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		board.Name = *req.Name
	}
	if req.Category != nil && *req.Category != "" {
		board.Category = *req.Category
	}

	if err := s.BoardDAO.Save(ctx, board); err != nil {
		return nil, response.NewPersistenceError(err.Error())
	}
	return board, nil
}

// DeleteBoard 删除看板并级联删除全部便签
func (s *BoardService) DeleteBoard(ctx context.Context, boardID int64) error {
	if _, err := s.GetBoard(ctx, boardID); err != nil {
		return err
	}

	if err := s.BoardDAO.DeleteCascade(ctx, boardID); err != nil {
		return response.NewPersistenceError(err.Error())
	}

	// 房间成员关系与看板生命周期无关，但在看计数可以直接清掉
	_ = s.RoomStorage.Clear(ctx, boardID)

	return nil
}

// Viewers 当前正在看这个看板的会话数
func (s *BoardService) Viewers(ctx context.Context, boardID int64) (int64, error) {
	viewers, err := s.RoomStorage.Viewers(ctx, boardID)
	if err != nil {
		return 0, response.NewPersistenceError(err.Error())
	}
	return viewers, nil
}
