package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one OHLCV sample of a price series.
type Bar struct {
	Time   time.Time       `json:"time"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Metadata describes the instrument behind a series. Fields the provider does
// not report stay null.
type Metadata struct {
	Symbol           string              `json:"symbol"`
	Name             string              `json:"name"`
	Currency         string              `json:"currency"`
	Exchange         string              `json:"exchange"`
	InstrumentType   string              `json:"instrument_type"`
	CurrentPrice     decimal.NullDecimal `json:"current_price"`
	PreviousClose    decimal.NullDecimal `json:"previous_close"`
	DayHigh          decimal.NullDecimal `json:"day_high"`
	DayLow           decimal.NullDecimal `json:"day_low"`
	Volume           int64               `json:"volume"`
	FiftyTwoWeekHigh decimal.NullDecimal `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  decimal.NullDecimal `json:"fifty_two_week_low"`
	MarketCap        decimal.NullDecimal `json:"market_cap"`
}

// Quote is the normalized answer for one symbol over one period.
type Quote struct {
	Symbol string   `json:"symbol"`
	Period Period   `json:"period"`
	Meta   Metadata `json:"meta"`
	Bars   []Bar    `json:"bars"`
}

// Summary holds the headline numbers shown next to a chart.
type Summary struct {
	Last      decimal.Decimal `json:"last"`
	PrevClose decimal.Decimal `json:"prev_close"`
	Change    decimal.Decimal `json:"change"`
	ChangePct decimal.Decimal `json:"change_pct"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	// ReturnPct is the close-to-close return from the first to the last bar.
	ReturnPct decimal.Decimal `json:"return_pct"`
}

var hundred = decimal.NewFromInt(100)

func pct(from, to decimal.Decimal) decimal.Decimal {
	if from.IsZero() {
		return decimal.Zero
	}
	return to.Sub(from).Div(from).Mul(hundred).Round(2)
}

// Summary computes headline numbers from the bars. ok is false when there are none.
func (q *Quote) Summary() (s Summary, ok bool) {
	if len(q.Bars) == 0 {
		return Summary{}, false
	}
	last := q.Bars[len(q.Bars)-1]
	prev := last.Close
	if len(q.Bars) > 1 {
		prev = q.Bars[len(q.Bars)-2].Close
	}
	s = Summary{
		Last:      last.Close,
		PrevClose: prev,
		Change:    last.Close.Sub(prev),
		ChangePct: pct(prev, last.Close),
		High:      last.High,
		Low:       last.Low,
		ReturnPct: pct(q.Bars[0].Close, last.Close),
	}
	return s, true
}
