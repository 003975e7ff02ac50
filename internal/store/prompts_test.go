package store

import (
	"context"
	"errors"
	"testing"

	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_CRUDAndCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1, err := s.CreatePrompt(ctx, PromptInput{Name: "6-month outlook", Category: "Market", Content: "Summarize..."})
	require.NoError(t, err)
	assert.Equal(t, "market", p1.Category)

	p2, err := s.CreatePrompt(ctx, PromptInput{Name: "Generic", Content: "Explain..."})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPromptCategory, p2.Category)

	_, err = s.CreatePrompt(ctx, PromptInput{Name: "Another", Category: "market", Content: "..."})
	require.NoError(t, err)

	cats, err := s.PromptCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"general", "market"}, cats)

	market, err := s.ListPrompts(ctx, PromptFilter{Category: "MARKET"})
	require.NoError(t, err)
	assert.Len(t, market, 2)

	updated, err := s.UpdatePrompt(ctx, p1.ID, PromptPatch{Content: ptr("Summarize the next six months")})
	require.NoError(t, err)
	assert.Equal(t, "6-month outlook", updated.Name)
	assert.Equal(t, "market", updated.Category)
	assert.Equal(t, "Summarize the next six months", updated.Content)

	_, err = s.UpdatePrompt(ctx, p1.ID, PromptPatch{Name: ptr(" ")})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	empty, err := s.ListPrompts(ctx, PromptFilter{Category: "none"})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPrompt_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreatePrompt(ctx, PromptInput{Content: "x"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = s.CreatePrompt(ctx, PromptInput{Name: "x"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
