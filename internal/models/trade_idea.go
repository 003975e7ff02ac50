package models

import "github.com/shopspring/decimal"

// IdeaStatus is the lifecycle state of a trade idea. Transitions are user-driven.
type IdeaStatus string

const (
	IdeaActive    IdeaStatus = "active"
	IdeaCompleted IdeaStatus = "completed"
	IdeaCancelled IdeaStatus = "cancelled"
)

// IdeaStatuses lists every status that may be persisted.
var IdeaStatuses = []IdeaStatus{IdeaActive, IdeaCompleted, IdeaCancelled}

// Valid reports whether s is one of the persisted statuses.
func (s IdeaStatus) Valid() bool {
	switch s {
	case IdeaActive, IdeaCompleted, IdeaCancelled:
		return true
	}
	return false
}

// TradeIdea is a planned, not yet executed trade.
type TradeIdea struct {
	Record
	Symbol      string              `gorm:"not null;index" json:"symbol"`
	EntryPrice  decimal.NullDecimal `gorm:"type:text" json:"entry_price"`
	TargetPrice decimal.NullDecimal `gorm:"type:text" json:"target_price"`
	StopLoss    decimal.NullDecimal `gorm:"type:text" json:"stop_loss"`

	// Market price when the idea was written down.
	PriceAtCreation decimal.NullDecimal `gorm:"type:text" json:"price_at_creation"`

	Description string     `gorm:"not null" json:"description"`
	Rationale   string     `gorm:"not null;default:''" json:"rationale"`
	Status      IdeaStatus `gorm:"type:text;not null;default:active;index;check:chk_trade_ideas_status,status IN ('active','completed','cancelled')" json:"status"`
}
