package store

import (
	"context"
	"fmt"
	"strings"

	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const kindIdea = "trade idea"

// TradeIdeaInput is the payload for a new trade idea. Symbol and Description are
// required. Prices are decimal strings and may be left blank; Status defaults to active.
type TradeIdeaInput struct {
	Symbol          string `json:"symbol"`
	EntryPrice      string `json:"entry_price"`
	TargetPrice     string `json:"target_price"`
	StopLoss        string `json:"stop_loss"`
	PriceAtCreation string `json:"price_at_creation"`
	Description     string `json:"description"`
	Rationale       string `json:"rationale"`
	Status          string `json:"status"`
}

// TradeIdeaPatch carries the fields to replace; nil fields keep their value.
// An empty price string clears that price.
// A present Status must name a status; blank is rejected rather than reset to active.
type TradeIdeaPatch struct {
	Symbol          *string `json:"symbol"`
	EntryPrice      *string `json:"entry_price"`
	TargetPrice     *string `json:"target_price"`
	StopLoss        *string `json:"stop_loss"`
	PriceAtCreation *string `json:"price_at_creation"`
	Description     *string `json:"description"`
	Rationale       *string `json:"rationale"`
	Status          *string `json:"status"`
}

// TradeIdeaFilter narrows ListTradeIdeas. An empty Status lists every idea.
type TradeIdeaFilter struct {
	Status string
}

func parseStatus(raw string) (models.IdeaStatus, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return models.IdeaActive, nil
	}
	status := models.IdeaStatus(raw)
	if !status.Valid() {
		return "", apperr.Invalid("status", fmt.Sprintf("must be one of %v", models.IdeaStatuses))
	}
	return status, nil
}

func (in TradeIdeaInput) build() (*models.TradeIdea, error) {
	symbol, err := normalizeSymbol(in.Symbol)
	if err != nil {
		return nil, err
	}
	entry, err := parseOptionalPositive("entry_price", in.EntryPrice)
	if err != nil {
		return nil, err
	}
	target, err := parseOptionalPositive("target_price", in.TargetPrice)
	if err != nil {
		return nil, err
	}
	stop, err := parseOptionalPositive("stop_loss", in.StopLoss)
	if err != nil {
		return nil, err
	}
	atCreation, err := parseOptionalPositive("price_at_creation", in.PriceAtCreation)
	if err != nil {
		return nil, err
	}
	description, err := requireText("description", in.Description)
	if err != nil {
		return nil, err
	}
	status, err := parseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	return &models.TradeIdea{
		Symbol:          symbol,
		EntryPrice:      entry,
		TargetPrice:     target,
		StopLoss:        stop,
		PriceAtCreation: atCreation,
		Description:     description,
		Rationale:       strings.TrimSpace(in.Rationale),
		Status:          status,
	}, nil
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func (p TradeIdeaPatch) apply(rec *models.TradeIdea) error {
	if p.Status != nil && strings.TrimSpace(*p.Status) == "" {
		return apperr.Invalid("status", "is required")
	}
	in := TradeIdeaInput{
		Symbol:          rec.Symbol,
		EntryPrice:      nullString(rec.EntryPrice),
		TargetPrice:     nullString(rec.TargetPrice),
		StopLoss:        nullString(rec.StopLoss),
		PriceAtCreation: nullString(rec.PriceAtCreation),
		Description:     rec.Description,
		Rationale:       rec.Rationale,
		Status:          string(rec.Status),
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&in.Symbol, p.Symbol)
	set(&in.EntryPrice, p.EntryPrice)
	set(&in.TargetPrice, p.TargetPrice)
	set(&in.StopLoss, p.StopLoss)
	set(&in.PriceAtCreation, p.PriceAtCreation)
	set(&in.Description, p.Description)
	set(&in.Rationale, p.Rationale)
	set(&in.Status, p.Status)

	next, err := in.build()
	if err != nil {
		return err
	}
	next.Record = rec.Record
	*rec = *next
	return nil
}

// CreateTradeIdea validates and stores a new trade idea.
func (s *Store) CreateTradeIdea(ctx context.Context, in TradeIdeaInput) (*models.TradeIdea, error) {
	rec, err := in.build()
	if err != nil {
		return nil, err
	}
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", kindIdea, err)
	}
	s.log.Info("Created trade idea", zap.Uint("id", rec.ID), zap.String("symbol", rec.Symbol))
	return rec, nil
}

// GetTradeIdea returns the idea with id.
func (s *Store) GetTradeIdea(ctx context.Context, id uint) (*models.TradeIdea, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	return getByID[models.TradeIdea](db, kindIdea, id)
}

// ListTradeIdeas returns ideas newest first, optionally only those in one status.
func (s *Store) ListTradeIdeas(ctx context.Context, filter TradeIdeaFilter) ([]models.TradeIdea, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	q := db.Order(listOrder)
	if strings.TrimSpace(filter.Status) != "" {
		status, err := parseStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		q = q.Where("status = ?", status)
	}
	items := []models.TradeIdea{}
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", kindIdea, err)
	}
	return items, nil
}

// UpdateTradeIdea replaces the fields set in patch.
func (s *Store) UpdateTradeIdea(ctx context.Context, id uint, patch TradeIdeaPatch) (*models.TradeIdea, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := updateByID(db, kindIdea, id, patch.apply)
	if err != nil {
		return nil, err
	}
	s.log.Info("Updated trade idea", zap.Uint("id", id), zap.String("status", string(rec.Status)))
	return rec, nil
}

// SetTradeIdeaStatus moves an idea to another status.
func (s *Store) SetTradeIdeaStatus(ctx context.Context, id uint, status models.IdeaStatus) (*models.TradeIdea, error) {
	raw := string(status)
	if raw == "" {
		return nil, apperr.Invalid("status", "is required")
	}
	return s.UpdateTradeIdea(ctx, id, TradeIdeaPatch{Status: &raw})
}

// DeleteTradeIdea removes the idea with id.
func (s *Store) DeleteTradeIdea(ctx context.Context, id uint) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := deleteByID[models.TradeIdea](db, kindIdea, id); err != nil {
		return err
	}
	s.log.Info("Deleted trade idea", zap.Uint("id", id))
	return nil
}
