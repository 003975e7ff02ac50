package store

import (
	"context"
	"fmt"
	"strings"

	"investment-assistant-go/internal/models"

	"go.uber.org/zap"
)

const kindTrend = "trend"

// TrendIdeaInput is the payload for creating a trend/idea pair. Trend is required.
type TrendIdeaInput struct {
	Title string `json:"title"`
	Trend string `json:"trend"`
	Idea  string `json:"idea"`
}

// TrendIdeaPatch carries the fields to replace; nil fields keep their value.
type TrendIdeaPatch struct {
	Title *string `json:"title"`
	Trend *string `json:"trend"`
	Idea  *string `json:"idea"`
}

func (in TrendIdeaInput) build() (*models.TrendIdeaPair, error) {
	trend, err := requireText("trend", in.Trend)
	if err != nil {
		return nil, err
	}
	return &models.TrendIdeaPair{
		Title: strings.TrimSpace(in.Title),
		Trend: trend,
		Idea:  strings.TrimSpace(in.Idea),
	}, nil
}

func (p TrendIdeaPatch) apply(rec *models.TrendIdeaPair) error {
	in := TrendIdeaInput{Title: rec.Title, Trend: rec.Trend, Idea: rec.Idea}
	if p.Title != nil {
		in.Title = *p.Title
	}
	if p.Trend != nil {
		in.Trend = *p.Trend
	}
	if p.Idea != nil {
		in.Idea = *p.Idea
	}
	next, err := in.build()
	if err != nil {
		return err
	}
	rec.Title, rec.Trend, rec.Idea = next.Title, next.Trend, next.Idea
	return nil
}

// CreateTrendIdea stores a new trend report with its (possibly empty) paired idea.
func (s *Store) CreateTrendIdea(ctx context.Context, in TrendIdeaInput) (*models.TrendIdeaPair, error) {
	rec, err := in.build()
	if err != nil {
		return nil, err
	}
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", kindTrend, err)
	}
	s.log.Info("Created trend", zap.Uint("id", rec.ID))
	return rec, nil
}

// GetTrendIdea returns the pair with id.
func (s *Store) GetTrendIdea(ctx context.Context, id uint) (*models.TrendIdeaPair, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	return getByID[models.TrendIdeaPair](db, kindTrend, id)
}

// ListTrendIdeas returns pairs newest first. limit <= 0 returns all of them.
func (s *Store) ListTrendIdeas(ctx context.Context, limit int) ([]models.TrendIdeaPair, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	items := []models.TrendIdeaPair{}
	if err := applyLimit(db.Order(listOrder), limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", kindTrend, err)
	}
	return items, nil
}

// UpdateTrendIdea replaces the fields set in patch.
func (s *Store) UpdateTrendIdea(ctx context.Context, id uint, patch TrendIdeaPatch) (*models.TrendIdeaPair, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := updateByID(db, kindTrend, id, patch.apply)
	if err != nil {
		return nil, err
	}
	s.log.Info("Updated trend", zap.Uint("id", id))
	return rec, nil
}

// SetTrendIdea replaces only the idea half of the pair.
func (s *Store) SetTrendIdea(ctx context.Context, id uint, idea string) (*models.TrendIdeaPair, error) {
	return s.UpdateTrendIdea(ctx, id, TrendIdeaPatch{Idea: &idea})
}

// DeleteTrendIdea removes the pair, idea included.
func (s *Store) DeleteTrendIdea(ctx context.Context, id uint) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := deleteByID[models.TrendIdeaPair](db, kindTrend, id); err != nil {
		return err
	}
	s.log.Info("Deleted trend", zap.Uint("id", id))
	return nil
}
