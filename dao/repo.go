package dao

import (
	"context"

	"gorm.io/gorm"
)

type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r Repo[T]) FindById(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Repo[T]) FindAll(ctx context.Context) ([]*T, error) {
	var items []*T
	err := r.Db.WithContext(ctx).Find(&items).Error
	return items, err
}

func (r Repo[T]) Create(ctx context.Context, item *T) error {
	return r.Db.WithContext(ctx).Create(item).Error
}

func (r Repo[T]) Save(ctx context.Context, item *T) error {
	return r.Db.WithContext(ctx).Save(item).Error
}

func (r Repo[T]) DeleteById(ctx context.Context, id int64) error {
	var item T
	return r.Db.WithContext(ctx).Where("id = ?", id).Delete(&item).Error
}
