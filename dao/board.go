package dao

import (
	"context"
	"time"

	"Moodgraph/models"

	"gorm.io/gorm"
)

type BoardDAO struct {
	Repo[models.Board]
}

func NewBoardDAO(db *gorm.DB) *BoardDAO {
	return &BoardDAO{Repo: NewRepo[models.Board](db)}
}

// FindAll 按最近更新时间倒序返回全部看板
func (d *BoardDAO) FindAll(ctx context.Context) ([]*models.Board, error) {
	var boards []*models.Board
	err := d.Db.WithContext(ctx).
		Order("updated_at DESC").
		Find(&boards).Error
	return boards, err
}

// DeleteCascade 删除看板并级联删除其全部便签
func (d *BoardDAO) DeleteCascade(ctx context.Context, boardID int64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", boardID).Delete(&models.Board{}).Error
	})
}

// TouchUpdatedAt 便签增删改时推进所属看板的更新时间
func (d *BoardDAO) TouchUpdatedAt(ctx context.Context, boardID int64) error {
	return d.Db.WithContext(ctx).
		Model(&models.Board{}).
		Where("id = ?", boardID).
		UpdateColumn("updated_at", time.Now()).Error
}
