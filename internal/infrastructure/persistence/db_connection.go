// Package persistence provides the GORM-backed stores for feedback and audit
// records. The driver (sqlite or postgres) is chosen by configuration.
package persistence

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/pkg/logger"
)

// Open connects to the configured database and migrates the core tables.
func Open(ctx context.Context, cfg *config.DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.PostgresDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
	}

	if err := db.WithContext(ctx).AutoMigrate(&models.FeedbackRecord{}, &models.AuditEvent{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	log.Info(ctx, "database ready",
		logger.String("driver", cfg.Driver),
	)
	return db, nil
}
