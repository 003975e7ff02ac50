package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "data/investment.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Market.CacheTTL)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Market.BaseURL)
	assert.False(t, cfg.AI.Enabled())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
database:
  path: "/tmp/other.db"
market:
  cache_ttl: 90s
logger:
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o644))
	t.Setenv("AI_API_KEY", "sk-test")
	t.Setenv("LOGGER_LEVEL", "debug")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, 90*time.Second, cfg.Market.CacheTTL)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.AI.Enabled())
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("database: [unclosed"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
