package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/osuda/internal/model"
)

// RedisStorage stores the collection as one JSON blob under a single key.
// The collection is small and always read/written wholesale, so a blob
// beats per-post hashes here.
type RedisStorage struct {
	client *redis.Client
	key    string
}

func NewRedisStorage(client *redis.Client, key string) *RedisStorage {
	if key == "" {
		key = "osuda:posts"
	}
	return &RedisStorage{client: client, key: key}
}

func (s *RedisStorage) LoadAll(ctx context.Context) ([]model.Post, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Post{}, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

func (s *RedisStorage) SaveAll(ctx context.Context, posts []model.Post) error {
	if posts == nil {
		posts = []model.Post{}
	}
	payload, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
