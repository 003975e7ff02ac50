package market

import (
	"strings"

	"investment-assistant-go/internal/apperr"
)

// Period is a lookback window for historical prices, in the provider's range syntax.
type Period string

const (
	Period1D  Period = "1d"
	Period5D  Period = "5d"
	Period1M  Period = "1mo"
	Period3M  Period = "3mo"
	Period6M  Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	Period10Y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"

	DefaultPeriod = Period6M
)

// Periods lists every supported period, shortest first.
var Periods = []Period{
	Period1D, Period5D, Period1M, Period3M, Period6M,
	Period1Y, Period2Y, Period5Y, Period10Y, PeriodYTD, PeriodMax,
}

// ParsePeriod accepts any of Periods, case-insensitively. Blank means DefaultPeriod.
func ParsePeriod(raw string) (Period, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return DefaultPeriod, nil
	}
	for _, p := range Periods {
		if string(p) == raw {
			return p, nil
		}
	}
	return "", apperr.Invalid("period", "unsupported period "+raw)
}
