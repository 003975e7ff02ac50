package format

import (
	"testing"
	"time"

	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/market"
	"investment-assistant-go/internal/models"
	"investment-assistant-go/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMoney(t *testing.T) {
	assert.Equal(t, "$3,000.00", Money(d("3000"), "USD"))
	assert.Equal(t, "$0.01", Money(d("0.005"), "usd"))
	assert.Equal(t, "-$11.00", Money(d("-11"), ""))
	assert.Equal(t, "$12.50", Money(d("12.5"), "NOPE"), "unknown codes fall back to USD")

	assert.Equal(t, "+$5.00", SignedMoney(d("5"), "USD"))
	assert.Equal(t, "-$5.00", SignedMoney(d("-5"), "USD"))
	assert.Equal(t, "$0.00", SignedMoney(decimal.Zero, "USD"))
}

func TestPercentAndPrice(t *testing.T) {
	assert.Equal(t, "+1.25%", Percent(d("1.25")))
	assert.Equal(t, "-10.00%", Percent(d("-10")))
	assert.Equal(t, "0.00%", Percent(decimal.Zero))

	assert.Equal(t, "-", Price(decimal.NullDecimal{}))
	assert.Equal(t, "180.5", Price(decimal.NewNullDecimal(d("180.50"))))
}

func TestStatsMarkdown(t *testing.T) {
	st := &store.Stats{
		TradeIdeas: 3, ActiveIdeas: 2, Trades: 1,
		TotalAmount: d("3000"), BuyAmount: d("3000"), SellAmount: decimal.Zero, NetAmount: d("3000"),
		RecentTrades: []models.TradeRecord{{
			Record: models.Record{ID: 7}, TradedAt: time.Date(2024, 6, 3, 15, 30, 0, 0, time.UTC),
			Symbol: "MSFT", Side: models.SideBuy, Quantity: d("10"), Price: d("300"), Amount: d("3000"),
			Rationale: "cloud | AI",
		}},
	}
	md := StatsMarkdown(st, "USD")
	assert.Contains(t, md, "| Trade ideas | 3 |")
	assert.Contains(t, md, "| Active ideas | 2 |")
	assert.Contains(t, md, "| Net | +$3,000.00 |")
	assert.Contains(t, md, "| 7 |")
	assert.Contains(t, md, `cloud \| AI`)
}

func TestEmptyTables(t *testing.T) {
	assert.Equal(t, "_No trades recorded._\n", TradesMarkdown(nil, "USD"))
	assert.Equal(t, "_No trade ideas._\n", IdeasMarkdown(nil))
}

func TestIdeasMarkdown(t *testing.T) {
	md := IdeasMarkdown([]models.TradeIdea{{
		Record: models.Record{ID: 1}, Symbol: "AAPL", Status: models.IdeaActive,
		EntryPrice: decimal.NewNullDecimal(d("180")), Description: "Buy the\ndip",
	}})
	assert.Contains(t, md, "| 1 | AAPL | active | 180 | - | - | Buy the dip |")
}

func TestTrendMarkdown(t *testing.T) {
	p := &models.TrendIdeaPair{Record: models.Record{ID: 4}, Trend: "Rates fall"}
	md := TrendMarkdown(p)
	assert.Contains(t, md, "# Trend #4")
	assert.Contains(t, md, "Rates fall")
	assert.Contains(t, md, "_No idea yet._")

	p.Title, p.Idea = "Rates", "Long duration"
	md = TrendMarkdown(p)
	assert.Contains(t, md, "# Rates")
	assert.Contains(t, md, "Long duration")
}

func TestQuotesMarkdown(t *testing.T) {
	res := &market.Result{
		Period: market.Period1M,
		Quotes: map[string]*market.Quote{
			"AAPL": {
				Symbol: "AAPL",
				Meta:   market.Metadata{Name: "Apple Inc.", Currency: "USD"},
				Bars: []market.Bar{
					{Close: d("100"), High: d("101"), Low: d("99")},
					{Close: d("102"), High: d("103"), Low: d("100")},
				},
			},
		},
		Errors: map[string]error{"NOTREAL": apperr.NotFound("symbol", "NOTREAL")},
	}
	md := QuotesMarkdown(res)
	assert.Contains(t, md, "# Quotes (1mo)")
	assert.Contains(t, md, "| AAPL | Apple Inc. | $102.00 | +$2.00 | +2.00% | +2.00% | - - - |")
	assert.Contains(t, md, "- NOTREAL: symbol NOTREAL: not found")
	assert.NotContains(t, md, "Cached")
}

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\nSome *text*.", "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "text")
}
