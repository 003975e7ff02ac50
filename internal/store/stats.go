package store

import (
	"context"
	"fmt"

	"investment-assistant-go/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultRecentTrades is how many trades Stats returns when asked for zero or fewer.
const DefaultRecentTrades = 10

// Stats is a snapshot of the whole store taken in one read transaction.
type Stats struct {
	TrendIdeas     int64 `json:"trend_ideas"`
	WeeklyTrends   int64 `json:"weekly_trends"`
	TradeIdeas     int64 `json:"trade_ideas"`
	ActiveIdeas    int64 `json:"active_ideas"`
	CompletedIdeas int64 `json:"completed_ideas"`
	CancelledIdeas int64 `json:"cancelled_ideas"`
	Trades         int64 `json:"trades"`
	Prompts        int64 `json:"prompts"`

	TotalAmount decimal.Decimal `json:"total_amount"`
	BuyAmount   decimal.Decimal `json:"buy_amount"`
	SellAmount  decimal.Decimal `json:"sell_amount"`
	// NetAmount is BuyAmount minus SellAmount, i.e. cash put to work.
	NetAmount decimal.Decimal `json:"net_amount"`

	RecentTrades []models.TradeRecord `json:"recent_trades"`
}

// Stats computes counts and sums over the current store. Nothing is cached:
// the result always reflects the latest committed writes.
func (s *Store) Stats(ctx context.Context, recent int) (*Stats, error) {
	if recent <= 0 {
		recent = DefaultRecentTrades
	}
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{}
	err = db.Transaction(func(tx *gorm.DB) error {
		counts := []struct {
			model any
			dst   *int64
		}{
			{&models.TrendIdeaPair{}, &st.TrendIdeas},
			{&models.WeeklyTrend{}, &st.WeeklyTrends},
			{&models.TradeIdea{}, &st.TradeIdeas},
			{&models.TradeRecord{}, &st.Trades},
			{&models.Prompt{}, &st.Prompts},
		}
		for _, c := range counts {
			if err := tx.Model(c.model).Count(c.dst).Error; err != nil {
				return err
			}
		}

		var byStatus []struct {
			Status models.IdeaStatus
			N      int64
		}
		if err := tx.Model(&models.TradeIdea{}).Select("status, count(*) as n").Group("status").Scan(&byStatus).Error; err != nil {
			return err
		}
		for _, row := range byStatus {
			switch row.Status {
			case models.IdeaActive:
				st.ActiveIdeas = row.N
			case models.IdeaCompleted:
				st.CompletedIdeas = row.N
			case models.IdeaCancelled:
				st.CancelledIdeas = row.N
			}
		}

		// Amounts are stored as exact decimal text, so they are summed here
		// rather than with SQL SUM, which would go through float64.
		var amounts []struct {
			Side   models.TradeSide
			Amount decimal.Decimal
		}
		if err := tx.Model(&models.TradeRecord{}).Select("side, amount").Scan(&amounts).Error; err != nil {
			return err
		}
		for _, row := range amounts {
			st.TotalAmount = st.TotalAmount.Add(row.Amount)
			if row.Side == models.SideSell {
				st.SellAmount = st.SellAmount.Add(row.Amount)
			} else {
				st.BuyAmount = st.BuyAmount.Add(row.Amount)
			}
		}
		st.NetAmount = st.BuyAmount.Sub(st.SellAmount)

		st.RecentTrades = []models.TradeRecord{}
		return tx.Order(listOrder).Limit(recent).Find(&st.RecentTrades).Error
	})
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}
	return st, nil
}
