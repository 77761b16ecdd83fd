package storage

import (
	"context"
	"sync"

	"github.com/d60-Lab/osuda/internal/model"
)

// MemoryStorage is a process-local backend. It backs tests and the
// `storage.backend: memory` mode (throwaway instances, demos).
type MemoryStorage struct {
	mu    sync.Mutex
	posts []model.Post

	// SaveErr, when set, is returned by every SaveAll without updating the
	// stored collection. Tests use it to exercise persistence failures.
	SaveErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{posts: []model.Post{}}
}

func (s *MemoryStorage) LoadAll(_ context.Context) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *MemoryStorage) SaveAll(_ context.Context, posts []model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.posts = make([]model.Post, len(posts))
	copy(s.posts, posts)
	return nil
}

// Stored returns a copy of what the last successful SaveAll wrote.
func (s *MemoryStorage) Stored() []model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Post, len(s.posts))
	copy(out, s.posts)
	return out
}
