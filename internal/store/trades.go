package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/models"

	"go.uber.org/zap"
)

const kindTrade = "trade"

// TradeRecordInput is the payload for recording an executed trade. Quantity and
// Price are decimal strings; Side defaults to buy and TradedAt to now.
type TradeRecordInput struct {
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"`
	Quantity  string    `json:"quantity"`
	Price     string    `json:"price"`
	TradedAt  time.Time `json:"traded_at"`
	Rationale string    `json:"rationale"`
}

// TradeRecordPatch carries the fields to replace; nil fields keep their value.
// Amount is not patchable, it follows Quantity and Price.
type TradeRecordPatch struct {
	Symbol    *string    `json:"symbol"`
	Side      *string    `json:"side"`
	Quantity  *string    `json:"quantity"`
	Price     *string    `json:"price"`
	TradedAt  *time.Time `json:"traded_at"`
	Rationale *string    `json:"rationale"`
}

// TradeRecordFilter narrows ListTradeRecords. Limit <= 0 means no limit.
type TradeRecordFilter struct {
	Symbol string
	Limit  int
}

func parseSide(raw string) (models.TradeSide, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return models.SideBuy, nil
	}
	side := models.TradeSide(raw)
	if !side.Valid() {
		return "", apperr.Invalid("side", "must be buy or sell")
	}
	return side, nil
}

func (in TradeRecordInput) build(now time.Time) (*models.TradeRecord, error) {
	symbol, err := normalizeSymbol(in.Symbol)
	if err != nil {
		return nil, err
	}
	side, err := parseSide(in.Side)
	if err != nil {
		return nil, err
	}
	qty, err := parsePositive("quantity", in.Quantity)
	if err != nil {
		return nil, err
	}
	price, err := parsePositive("price", in.Price)
	if err != nil {
		return nil, err
	}
	tradedAt := in.TradedAt
	if tradedAt.IsZero() {
		tradedAt = now
	}
	rec := &models.TradeRecord{
		TradedAt:  tradedAt.UTC(),
		Symbol:    symbol,
		Side:      side,
		Quantity:  qty,
		Price:     price,
		Rationale: strings.TrimSpace(in.Rationale),
	}
	rec.Recompute()
	return rec, nil
}

func (p TradeRecordPatch) apply(rec *models.TradeRecord) error {
	in := TradeRecordInput{
		Symbol:    rec.Symbol,
		Side:      string(rec.Side),
		Quantity:  rec.Quantity.String(),
		Price:     rec.Price.String(),
		TradedAt:  rec.TradedAt,
		Rationale: rec.Rationale,
	}
	if p.Symbol != nil {
		in.Symbol = *p.Symbol
	}
	if p.Side != nil {
		in.Side = *p.Side
	}
	if p.Quantity != nil {
		in.Quantity = *p.Quantity
	}
	if p.Price != nil {
		in.Price = *p.Price
	}
	if p.TradedAt != nil {
		in.TradedAt = *p.TradedAt
	}
	if p.Rationale != nil {
		in.Rationale = *p.Rationale
	}

	next, err := in.build(rec.TradedAt)
	if err != nil {
		return err
	}
	next.Record = rec.Record
	*rec = *next
	return nil
}

// CreateTradeRecord validates and stores an executed trade with Amount = Quantity × Price.
func (s *Store) CreateTradeRecord(ctx context.Context, in TradeRecordInput) (*models.TradeRecord, error) {
	rec, err := in.build(time.Now())
	if err != nil {
		return nil, err
	}
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	if err := db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", kindTrade, err)
	}
	s.log.Info("Recorded trade",
		zap.Uint("id", rec.ID),
		zap.String("symbol", rec.Symbol),
		zap.String("side", string(rec.Side)),
		zap.Stringer("amount", rec.Amount),
	)
	return rec, nil
}

// GetTradeRecord returns the trade with id.
func (s *Store) GetTradeRecord(ctx context.Context, id uint) (*models.TradeRecord, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	return getByID[models.TradeRecord](db, kindTrade, id)
}

// ListTradeRecords returns trades newest first.
func (s *Store) ListTradeRecords(ctx context.Context, filter TradeRecordFilter) ([]models.TradeRecord, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	q := db.Order(listOrder)
	if strings.TrimSpace(filter.Symbol) != "" {
		symbol, err := normalizeSymbol(filter.Symbol)
		if err != nil {
			return nil, err
		}
		q = q.Where("symbol = ?", symbol)
	}
	items := []models.TradeRecord{}
	if err := applyLimit(q, filter.Limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", kindTrade, err)
	}
	return items, nil
}

// UpdateTradeRecord replaces the fields set in patch and recomputes Amount.
func (s *Store) UpdateTradeRecord(ctx context.Context, id uint, patch TradeRecordPatch) (*models.TradeRecord, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := updateByID(db, kindTrade, id, patch.apply)
	if err != nil {
		return nil, err
	}
	s.log.Info("Updated trade", zap.Uint("id", id), zap.Stringer("amount", rec.Amount))
	return rec, nil
}

// DeleteTradeRecord removes the trade with id.
func (s *Store) DeleteTradeRecord(ctx context.Context, id uint) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := deleteByID[models.TradeRecord](db, kindTrade, id); err != nil {
		return err
	}
	s.log.Info("Deleted trade", zap.Uint("id", id))
	return nil
}
