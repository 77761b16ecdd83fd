package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/osuda/config"
)

// InitDB opens the configured database for the database storage backend.
// sqlite is the default (single-user deployments); postgres is available for
// anything shared.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	switch cfg.Storage.Database.Driver {
	case "sqlite", "":
		db, err := gorm.Open(sqlite.Open(cfg.Storage.Database.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Storage.Database.DSN, err)
		}
		return db, nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.Storage.Database.DSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Storage.Database.Driver)
	}
}
