package store

import (
	"context"
	"fmt"
	"strings"

	"investment-assistant-go/internal/models"

	"go.uber.org/zap"
)

const kindPrompt = "prompt"

// PromptInput is the payload for a new prompt. Name and Content are required;
// Category defaults to models.DefaultPromptCategory.
type PromptInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// PromptPatch carries the fields to replace; nil fields keep their value.
type PromptPatch struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Content  *string `json:"content"`
}

// PromptFilter narrows ListPrompts. An empty Category lists every prompt.
type PromptFilter struct {
	Category string
}

func normalizeCategory(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return models.DefaultPromptCategory
	}
	return raw
}

func (in PromptInput) build() (*models.Prompt, error) {
	name, err := requireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	content, err := requireText("content", in.Content)
	if err != nil {
		return nil, err
	}
	return &models.Prompt{Name: name, Category: normalizeCategory(in.Category), Content: content}, nil
}

func (p PromptPatch) apply(rec *models.Prompt) error {
	in := PromptInput{Name: rec.Name, Category: rec.Category, Content: rec.Content}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	if p.Content != nil {
		in.Content = *p.Content
	}
	next, err := in.build()
	if err != nil {
		return err
	}
	rec.Name, rec.Category, rec.Content = next.Name, next.Category, next.Content
	return nil
}

// CreatePrompt validates and stores a new prompt.
func (s *Store) CreatePrompt(ctx context.Context, in PromptInput) (*models.Prompt, error) {
	rec, err := in.build()
	if err != nil {
		return nil, err
	}
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", kindPrompt, err)
	}
	s.log.Info("Created prompt", zap.Uint("id", rec.ID), zap.String("category", rec.Category))
	return rec, nil
}

// GetPrompt returns the prompt with id.
func (s *Store) GetPrompt(ctx context.Context, id uint) (*models.Prompt, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	return getByID[models.Prompt](db, kindPrompt, id)
}

// ListPrompts returns prompts newest first, optionally within one category.
func (s *Store) ListPrompts(ctx context.Context, filter PromptFilter) ([]models.Prompt, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	q := db.Order(listOrder)
	if strings.TrimSpace(filter.Category) != "" {
		q = q.Where("category = ?", normalizeCategory(filter.Category))
	}
	items := []models.Prompt{}
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", kindPrompt, err)
	}
	return items, nil
}

// PromptCategories returns the distinct categories in use, alphabetically.
func (s *Store) PromptCategories(ctx context.Context) ([]string, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	categories := []string{}
	if err := db.Model(&models.Prompt{}).Distinct("category").Order("category asc").Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("list prompt categories: %w", err)
	}
	return categories, nil
}

// UpdatePrompt replaces the fields set in patch.
func (s *Store) UpdatePrompt(ctx context.Context, id uint, patch PromptPatch) (*models.Prompt, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := updateByID(db, kindPrompt, id, patch.apply)
	if err != nil {
		return nil, err
	}
	s.log.Info("Updated prompt", zap.Uint("id", id))
	return rec, nil
}

// DeletePrompt removes the prompt with id.
func (s *Store) DeletePrompt(ctx context.Context, id uint) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := deleteByID[models.Prompt](db, kindPrompt, id); err != nil {
		return err
	}
	s.log.Info("Deleted prompt", zap.Uint("id", id))
	return nil
}
