package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/d60-Lab/osuda/internal/model"
)

// FileStorage keeps the collection as a single indented JSON array on local
// disk, the same layout the web UI's export produces.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) LoadAll(_ context.Context) ([]model.Post, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Post{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

func (s *FileStorage) SaveAll(_ context.Context, posts []model.Post) error {
	if posts == nil {
		posts = []model.Post{}
	}
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
