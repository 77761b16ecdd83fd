package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/osuda/internal/model"
)

// DatabaseStorage maps the wholesale contract onto a posts table. SaveAll is
// delete-all + insert-all inside one transaction, which keeps the semantics
// identical to the file backend (last write wins for the whole collection).
type DatabaseStorage struct {
	db *gorm.DB
}

func NewDatabaseStorage(db *gorm.DB) (*DatabaseStorage, error) {
	if err := db.AutoMigrate(&model.Post{}); err != nil {
		return nil, fmt.Errorf("migrate posts: %w", err)
	}
	return &DatabaseStorage{db: db}, nil
}

func (s *DatabaseStorage) LoadAll(ctx context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	if err := s.db.WithContext(ctx).Order("id").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	return posts, nil
}

func (s *DatabaseStorage) SaveAll(ctx context.Context, posts []model.Post) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if len(posts) == 0 {
			return nil
		}
		return tx.Create(&posts).Error
	})
	if err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	return nil
}
