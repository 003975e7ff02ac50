package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	kindWeekly = "weekly trend"

	// DefaultWeeklyLimit covers six months of weekly notes.
	DefaultWeeklyLimit = 26
)

// WeeklyTrendInput is the note for the week containing WeekStart (YYYY-MM-DD).
type WeeklyTrendInput struct {
	WeekStart string `json:"week_start"`
	Content   string `json:"content"`
}

// UpsertWeeklyTrend writes the note for a week, replacing any existing note for
// that week. created reports whether a new row was inserted.
func (s *Store) UpsertWeeklyTrend(ctx context.Context, in WeeklyTrendInput) (rec *models.WeeklyTrend, created bool, err error) {
	week, err := ParseWeek(in.WeekStart)
	if err != nil {
		return nil, false, err
	}
	content, err := requireText("content", in.Content)
	if err != nil {
		return nil, false, err
	}
	db, err := s.conn(ctx)
	if err != nil {
		return nil, false, err
	}

	key := week.Format(time.DateOnly)
	err = db.Transaction(func(tx *gorm.DB) error {
		var existing models.WeeklyTrend
		err := tx.Where("week_start = ?", key).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec = &models.WeeklyTrend{WeekStart: key, Content: content}
			created = true
			return tx.Create(rec).Error
		case err != nil:
			return err
		}
		existing.Content = content
		rec = &existing
		return tx.Save(rec).Error
	})
	if err != nil {
		return nil, false, fmt.Errorf("upsert %s %s: %w", kindWeekly, key, err)
	}
	s.log.Info("Saved weekly trend", zap.String("week", key), zap.Bool("created", created))
	return rec, created, nil
}

// GetWeeklyTrend returns the note for the week containing the given date.
func (s *Store) GetWeeklyTrend(ctx context.Context, weekStart string) (*models.WeeklyTrend, error) {
	week, err := ParseWeek(weekStart)
	if err != nil {
		return nil, err
	}
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	key := week.Format(time.DateOnly)
	var rec models.WeeklyTrend
	err = db.Where("week_start = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(kindWeekly, key)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", kindWeekly, key, err)
	}
	return &rec, nil
}

// ListWeeklyTrends returns notes by week, latest week first.
// limit <= 0 falls back to DefaultWeeklyLimit.
func (s *Store) ListWeeklyTrends(ctx context.Context, limit int) ([]models.WeeklyTrend, error) {
	if limit <= 0 {
		limit = DefaultWeeklyLimit
	}
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	items := []models.WeeklyTrend{}
	if err := db.Order("week_start desc").Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", kindWeekly, err)
	}
	return items, nil
}

// DeleteWeeklyTrend removes the note with id.
func (s *Store) DeleteWeeklyTrend(ctx context.Context, id uint) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := deleteByID[models.WeeklyTrend](db, kindWeekly, id); err != nil {
		return err
	}
	s.log.Info("Deleted weekly trend", zap.Uint("id", id))
	return nil
}
