package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/config"
	"investment-assistant-go/internal/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestStore opens a fresh file-backed store for each test to keep them isolated.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDatabase(config.Database{Path: filepath.Join(t.TempDir(), "test.db")}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	s := New(db, zap.NewNop())
	require.NoError(t, s.Init(context.Background()))
	return s
}

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestInit_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreatePrompt(ctx, PromptInput{Name: "n", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.Init(ctx))

	prompts, err := s.ListPrompts(ctx, PromptFilter{})
	require.NoError(t, err)
	assert.Len(t, prompts, 1)
}

func TestInit_Lazy(t *testing.T) {
	db, err := database.NewDatabase(config.Database{Path: filepath.Join(t.TempDir(), "lazy.db")}, zap.NewNop())
	require.NoError(t, err)
	s := New(db, zap.NewNop())

	// No explicit Init: the first operation creates the schema.
	ideas, err := s.ListTradeIdeas(context.Background(), TradeIdeaFilter{})
	require.NoError(t, err)
	assert.Empty(t, ideas)
	assert.NotNil(t, ideas)
}

func TestCreate_UniqueStableIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seen := map[uint]bool{}
	for i := 0; i < 5; i++ {
		rec, err := s.CreateTrendIdea(ctx, TrendIdeaInput{Trend: "trend", Idea: "idea"})
		require.NoError(t, err)
		assert.False(t, seen[rec.ID], "duplicate id %d", rec.ID)
		seen[rec.ID] = true

		got, err := s.GetTrendIdea(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, "trend", got.Trend)
		assert.False(t, got.CreatedAt.IsZero())
		_, offset := got.CreatedAt.Zone()
		assert.Equal(t, 0, offset, "timestamps are stored as UTC instants")
	}
}

func TestTrendIdea_EmptyTrendLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTrendIdea(ctx, TrendIdeaInput{Trend: "AI capex keeps growing"})
	require.NoError(t, err)
	before, err := s.Stats(ctx, 0)
	require.NoError(t, err)

	_, err = s.CreateTrendIdea(ctx, TrendIdeaInput{Title: "empty", Trend: "   ", Idea: "buy"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "trend", ve.Field)

	after, err := s.Stats(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, before.TrendIdeas, after.TrendIdeas)
	assert.Equal(t, int64(1), after.TrendIdeas)
}

func TestTrendIdea_UpdateAndSetIdea(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.CreateTrendIdea(ctx, TrendIdeaInput{Title: "Rates", Trend: "Rates fall in H2"})
	require.NoError(t, err)
	assert.False(t, rec.HasIdea())

	withIdea, err := s.SetTrendIdea(ctx, rec.ID, "Long duration bonds")
	require.NoError(t, err)
	assert.Equal(t, "Long duration bonds", withIdea.Idea)
	assert.Equal(t, "Rates fall in H2", withIdea.Trend)

	updated, err := s.UpdateTrendIdea(ctx, rec.ID, TrendIdeaPatch{Trend: ptr("Rates fall in Q3")})
	require.NoError(t, err)

	got, err := s.GetTrendIdea(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rates", got.Title)
	assert.Equal(t, "Rates fall in Q3", got.Trend)
	assert.Equal(t, "Long duration bonds", got.Idea)
	assert.Equal(t, updated.Trend, got.Trend)

	_, err = s.UpdateTrendIdea(ctx, rec.ID, TrendIdeaPatch{Trend: ptr("")})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	got, err = s.GetTrendIdea(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rates fall in Q3", got.Trend, "rejected update must not persist")
}

func TestDelete_ThenGetIsNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trend, err := s.CreateTrendIdea(ctx, TrendIdeaInput{Trend: "t"})
	require.NoError(t, err)
	idea, err := s.CreateTradeIdea(ctx, TradeIdeaInput{Symbol: "AAPL", Description: "d"})
	require.NoError(t, err)
	trade, err := s.CreateTradeRecord(ctx, TradeRecordInput{Symbol: "MSFT", Quantity: "1", Price: "1"})
	require.NoError(t, err)
	prompt, err := s.CreatePrompt(ctx, PromptInput{Name: "n", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTrendIdea(ctx, trend.ID))
	require.NoError(t, s.DeleteTradeIdea(ctx, idea.ID))
	require.NoError(t, s.DeleteTradeRecord(ctx, trade.ID))
	require.NoError(t, s.DeletePrompt(ctx, prompt.ID))

	_, err = s.GetTrendIdea(ctx, trend.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = s.GetTradeIdea(ctx, idea.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = s.GetTradeRecord(ctx, trade.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = s.GetPrompt(ctx, prompt.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	// Deleting twice is not idempotent.
	assert.True(t, errors.Is(s.DeleteTrendIdea(ctx, trend.ID), apperr.ErrNotFound))
	assert.True(t, errors.Is(s.DeleteTradeIdea(ctx, idea.ID), apperr.ErrNotFound))
	assert.True(t, errors.Is(s.DeleteTradeRecord(ctx, trade.ID), apperr.ErrNotFound))
	assert.True(t, errors.Is(s.DeletePrompt(ctx, prompt.ID), apperr.ErrNotFound))
}

func TestUpdate_MissingIDIsNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpdateTradeIdea(ctx, 999, TradeIdeaPatch{Status: ptr("completed")})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = s.UpdateTradeRecord(ctx, 999, TradeRecordPatch{Price: ptr("1")})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = s.UpdatePrompt(ctx, 999, PromptPatch{Name: ptr("x")})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = s.UpdateTrendIdea(ctx, 999, TrendIdeaPatch{Idea: ptr("x")})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
