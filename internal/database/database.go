package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"investment-assistant-go/internal/config"
	"investment-assistant-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Tables lists every model persisted in the store, in migration order.
var Tables = []any{
	&models.TrendIdeaPair{},
	&models.WeeklyTrend{},
	&models.TradeIdea{},
	&models.TradeRecord{},
	&models.Prompt{},
}

// NewDatabase opens the single-file SQLite store, creating its directory if needed.
// Schema creation is left to AutoMigrate so callers can control when it runs.
func NewDatabase(cfg config.Database, log *zap.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn(cfg.Path)), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One writer, one connection: SQLite serializes anyway and this keeps
	// ":memory:" databases from splitting across pool connections.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Info("Opened database", zap.String("path", cfg.Path))
	return db, nil
}

// AutoMigrate creates any missing table, column or index. It never drops data
// and is safe to run on every start.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Tables...); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

func dsn(path string) string {
	if path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
}
