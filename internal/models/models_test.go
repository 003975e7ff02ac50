package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTradeRecord_Recompute(t *testing.T) {
	trade := TradeRecord{
		Quantity: decimal.RequireFromString("10"),
		Price:    decimal.RequireFromString("300.00"),
	}
	trade.Recompute()
	assert.True(t, trade.Amount.Equal(decimal.RequireFromString("3000.00")), trade.Amount.String())

	// 0.1 × 3 drifts in float64 but not here.
	trade.Quantity = decimal.RequireFromString("3")
	trade.Price = decimal.RequireFromString("0.1")
	assert.NoError(t, trade.BeforeSave(nil))
	assert.Equal(t, "0.3", trade.Amount.String())
}

func TestStatusAndSide(t *testing.T) {
	for _, s := range IdeaStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, IdeaStatus("paused").Valid())
	assert.False(t, IdeaStatus("").Valid())

	assert.True(t, SideBuy.Valid())
	assert.True(t, SideSell.Valid())
	assert.False(t, TradeSide("short").Valid())
}

func TestTrendIdeaPair_HasIdea(t *testing.T) {
	assert.False(t, TrendIdeaPair{Trend: "rates fall"}.HasIdea())
	assert.True(t, TrendIdeaPair{Trend: "rates fall", Idea: "long TLT"}.HasIdea())
}
