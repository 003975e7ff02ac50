// Package store is the data access layer: validated CRUD for trends, trade ideas,
// trade records and prompts, plus aggregate statistics over all of them.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// listOrder is the default ordering of every list: newest first, id as tiebreaker.
const listOrder = "created_at desc, id desc"

// Store owns the database handle. No other component writes to it.
type Store struct {
	db  *gorm.DB
	log *zap.Logger

	mu    sync.Mutex
	ready bool
}

// New wraps db. Call Init once at startup; operations also call it lazily.
func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log.Named("store")}
}

// Init makes sure every table exists. After the first success it is a no-op;
// a failed attempt is retried on the next call.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}
	if err := database.AutoMigrate(s.db.WithContext(ctx)); err != nil {
		return err
	}
	s.ready = true
	s.log.Debug("Schema ready")
	return nil
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if err := s.Init(ctx); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s.db.WithContext(ctx), nil
}

func getByID[T any](db *gorm.DB, kind string, id uint) (*T, error) {
	var rec T
	err := db.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(kind, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", kind, id, err)
	}
	return &rec, nil
}

func deleteByID[T any](db *gorm.DB, kind string, id uint) error {
	res := db.Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("delete %s %d: %w", kind, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(kind, id)
	}
	return nil
}

// updateByID loads the row, lets apply mutate it and writes the full record back,
// all inside one transaction so a rejected patch leaves the row untouched.
func updateByID[T any](db *gorm.DB, kind string, id uint, apply func(*T) error) (*T, error) {
	var out *T
	err := db.Transaction(func(tx *gorm.DB) error {
		rec, err := getByID[T](tx, kind, id)
		if err != nil {
			return err
		}
		if err := apply(rec); err != nil {
			return err
		}
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("save %s %d: %w", kind, id, err)
		}
		out = rec
		return nil
	})
	return out, err
}

func applyLimit(q *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return q.Limit(limit)
	}
	return q
}
