package store

import (
	"strings"
	"time"
	"unicode"

	"investment-assistant-go/internal/apperr"

	"github.com/shopspring/decimal"
)

const maxSymbolLen = 16

// requireText trims v and rejects blank values.
func requireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apperr.Invalid(field, "is required")
	}
	return v, nil
}

// normalizeSymbol upper-cases a ticker such as "brk.b" or "mc.pa".
func normalizeSymbol(v string) (string, error) {
	v, err := requireText("symbol", v)
	if err != nil {
		return "", err
	}
	if len(v) > maxSymbolLen {
		return "", apperr.Invalid("symbol", "is too long")
	}
	for _, r := range v {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(".-^=", r)) {
			return "", apperr.Invalid("symbol", "contains "+string(r))
		}
	}
	return strings.ToUpper(v), nil
}

// parsePositive parses a required decimal greater than zero.
func parsePositive(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, apperr.Invalid(field, "is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperr.Invalid(field, "is not a number")
	}
	if !d.IsPositive() {
		return decimal.Zero, apperr.Invalid(field, "must be greater than zero")
	}
	return d, nil
}

// parseOptionalPositive is parsePositive where blank means "not set".
func parseOptionalPositive(field, raw string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := parsePositive(field, raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// ParseWeek parses a YYYY-MM-DD date and returns the Monday of its week.
func ParseWeek(raw string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperr.Invalid("week_start", "must be a YYYY-MM-DD date")
	}
	return WeekStart(d), nil
}

// WeekStart returns midnight UTC of the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
