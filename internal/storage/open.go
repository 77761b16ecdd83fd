package storage

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/osuda/config"
	"github.com/d60-Lab/osuda/pkg/database"
)

// Open builds the Storage selected by storage.backend. file is the default.
func Open(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Backend {
	case "file", "":
		return NewFileStorage(cfg.Storage.File.Path), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		return NewRedisStorage(client, cfg.Storage.Redis.Key), nil
	case "database":
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, err
		}
		return NewDatabaseStorage(db)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
