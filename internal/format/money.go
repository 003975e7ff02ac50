// Package format renders stored records and quotes as Markdown for the terminal.
package format

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is known.
const DefaultCurrency = "USD"

func currency(code string) *money.Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if c := money.GetCurrency(code); c != nil {
		return c
	}
	return money.GetCurrency(DefaultCurrency)
}

// Money formats amount in the currency's own notation, e.g. $3,000.00.
// Amounts are rounded half away from zero to the currency's minor unit.
func Money(amount decimal.Decimal, code string) string {
	cur := currency(code)
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// SignedMoney is Money with an explicit plus sign for gains.
func SignedMoney(amount decimal.Decimal, code string) string {
	if amount.IsPositive() {
		return "+" + Money(amount, code)
	}
	return Money(amount, code)
}

// Percent formats a percentage with two decimals and a sign, e.g. +1.25%.
func Percent(p decimal.Decimal) string {
	s := p.StringFixed(2) + "%"
	if p.IsPositive() {
		return "+" + s
	}
	return s
}

// Price formats an optional price; null prints as a dash.
func Price(p decimal.NullDecimal) string {
	if !p.Valid {
		return "-"
	}
	return p.Decimal.String()
}
