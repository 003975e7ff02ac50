package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"investment-assistant-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen(t *testing.T) {
	cfg := config.Config{
		Database: config.Database{Path: filepath.Join(t.TempDir(), "nested", "app.db")},
		Market:   config.Market{BaseURL: "http://127.0.0.1:0", Timeout: time.Second, CacheTTL: time.Minute},
	}
	a, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, a.Close()) }()

	assert.NotNil(t, a.Gateway)
	st, err := a.Store.Stats(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, st.Trades)
}

func TestNew_DefaultsWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "data", "investment.db"))

	a, err := New(context.Background(), dir)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "info", a.Config.Logger.Level)
	assert.Equal(t, 5*time.Minute, a.Config.Market.CacheTTL)
	assert.FileExists(t, a.Config.Database.Path)
}
