package models

import (
	"time"
)

type Board struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Category  string    `gorm:"column:category;type:varchar(50);not null;default:'general'" json:"category"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (b Board) TableName() string {
	return "boards"
}
