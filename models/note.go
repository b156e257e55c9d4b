package models

import (
	"time"
)

type Note struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BoardID   int64     `gorm:"column:board_id;not null;index:idx_board_id" json:"board_id"`
	Title     string    `gorm:"column:title;type:varchar(100);not null;default:''" json:"title"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	ImageURL  string    `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	PositionX float64   `gorm:"column:position_x;not null;default:0" json:"position_x"`
	PositionY float64   `gorm:"column:position_y;not null;default:0" json:"position_y"`
	Color     string    `gorm:"column:color;type:varchar(32);not null;default:'#fef08a'" json:"color"`
	Width     int       `gorm:"column:width;not null;default:200" json:"width"`
	Height    int       `gorm:"column:height;not null;default:200" json:"height"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (n Note) TableName() string {
	return "notes"
}
