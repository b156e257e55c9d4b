package dao

import (
	"context"

	"Moodgraph/models"

	"gorm.io/gorm"
)

type NoteDAO struct {
	Repo[models.Note]
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{Repo: NewRepo[models.Note](db)}
}

// FindByBoardID 查询看板下的便签列表
func (d *NoteDAO) FindByBoardID(ctx context.Context, boardID int64) ([]*models.Note, error) {
	var notes []*models.Note
	err := d.Db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}
