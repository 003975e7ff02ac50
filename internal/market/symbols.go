package market

import (
	"sort"
	"strings"
	"unicode"

	"investment-assistant-go/internal/apperr"
)

// ParseSymbols splits user input such as "AAPL, msft tsla" into upper-case
// tickers, dropping duplicates and keeping first-seen order.
func ParseSymbols(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		s := strings.ToUpper(f)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

const maxSymbolLen = 16

// checkSymbol accepts tickers such as "BRK.B", "^GSPC" or "EURUSD=X".
func checkSymbol(s string) error {
	if len(s) > maxSymbolLen {
		return apperr.Invalid("symbols", "symbol is longer than 16 characters")
	}
	for _, r := range s {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(".-^=", r)) {
			return apperr.Invalid("symbols", "symbol "+s+" contains "+string(r))
		}
	}
	return nil
}

// normalizeSymbols returns the sorted, de-duplicated symbol set used as a cache key.
func normalizeSymbols(symbols []string) ([]string, error) {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if err := checkSymbol(s); err != nil {
			return nil, err
		}
		set[s] = struct{}{}
	}
	if len(set) == 0 {
		return nil, apperr.Invalid("symbols", "at least one symbol is required")
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}
