package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TradeSide is the direction of an executed trade.
type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

// Valid reports whether s is buy or sell.
func (s TradeSide) Valid() bool {
	return s == SideBuy || s == SideSell
}

// TradeRecord is an executed trade. Amount is derived from Quantity and Price
// and is recomputed on every save.
type TradeRecord struct {
	Record
	TradedAt  time.Time       `gorm:"not null;index" json:"traded_at"`
	Symbol    string          `gorm:"not null;index" json:"symbol"`
	Side      TradeSide       `gorm:"type:text;not null;default:buy;check:chk_trade_records_side,side IN ('buy','sell')" json:"side"`
	Quantity  decimal.Decimal `gorm:"type:text;not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:text;not null" json:"price"`
	Amount    decimal.Decimal `gorm:"type:text;not null" json:"amount"`
	Rationale string          `gorm:"not null;default:''" json:"rationale"`
}

// Recompute sets Amount to Quantity × Price.
func (t *TradeRecord) Recompute() {
	t.Amount = t.Quantity.Mul(t.Price)
}

// BeforeSave keeps Amount consistent no matter which code path writes the row.
func (t *TradeRecord) BeforeSave(tx *gorm.DB) error {
	t.Recompute()
	return nil
}
