package database

import (
	"path/filepath"
	"testing"

	"investment-assistant-go/internal/config"
	"investment-assistant-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDatabase_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.db")

	db, err := NewDatabase(config.Database{Path: path}, zap.NewNop())
	require.NoError(t, err)
	assert.FileExists(t, path)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Close())
}

func TestAutoMigrate_Idempotent(t *testing.T) {
	db, err := NewDatabase(config.Database{Path: filepath.Join(t.TempDir(), "store.db")}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	require.NoError(t, db.Create(&models.Prompt{Name: "weekly", Category: "market", Content: "summarize"}).Error)

	// A second run must keep existing rows.
	require.NoError(t, AutoMigrate(db))

	var count int64
	require.NoError(t, db.Model(&models.Prompt{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	for _, table := range Tables {
		assert.True(t, db.Migrator().HasTable(table))
	}
}

func TestAutoMigrate_StatusConstraint(t *testing.T) {
	db, err := NewDatabase(config.Database{Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	err = db.Create(&models.TradeIdea{Symbol: "AAPL", Status: "paused"}).Error
	assert.Error(t, err, "the table must reject statuses outside the enum")
}
