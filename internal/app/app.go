// Package app wires configuration, logging, storage and market data together
// for the binaries under cmd/.
package app

import (
	"context"
	"fmt"

	"investment-assistant-go/internal/config"
	"investment-assistant-go/internal/database"
	"investment-assistant-go/internal/logger"
	"investment-assistant-go/internal/market"
	"investment-assistant-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the long-lived components shared by the server and the CLI.
type App struct {
	Config  config.Config
	Log     *zap.Logger
	Store   *store.Store
	Gateway *market.Gateway

	db *gorm.DB
}

// New loads .env and the config directory, then opens the store and makes
// sure its schema exists. A missing .env or config file is not an error.
func New(ctx context.Context, configDir string) (*App, error) {
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("could not init logger: %w", err)
	}
	if envErr != nil {
		log.Debug("No .env file found, using environment variables")
	}
	log.Info("Configuration loaded", zap.Bool("ai_enabled", cfg.AI.Enabled()))

	a, err := Open(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return a, nil
}

// Open builds an App from an already loaded configuration.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	st := store.New(db, log)
	if err := st.Init(ctx); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	log.Info("Database ready", zap.String("path", cfg.Database.Path))

	yahoo := market.NewYahooClient(&cfg.Market, log)
	gw := market.NewGateway(yahoo, cfg.Market.CacheTTL, log)

	return &App{Config: cfg, Log: log, Store: st, Gateway: gw, db: db}, nil
}

// Close releases the database handle and flushes the logger.
func (a *App) Close() error {
	defer func() { _ = a.Log.Sync() }()
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
