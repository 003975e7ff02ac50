package market

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"investment-assistant-go/internal/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCacheTTL is how long a (symbols, period) answer is reused.
const DefaultCacheTTL = 5 * time.Minute

// Result is the answer to one Quote call. Quotes holds every symbol that
// resolved; Errors holds the reason for every symbol that did not.
// A Result may be shared between callers and must not be modified.
type Result struct {
	Period    Period            `json:"period"`
	Quotes    map[string]*Quote `json:"quotes"`
	Errors    map[string]error  `json:"-"`
	FetchedAt time.Time         `json:"fetched_at"`
	Cached    bool              `json:"cached"`
}

// Failed returns the symbols without data, sorted.
func (r *Result) Failed() []string {
	out := make([]string, 0, len(r.Errors))
	for s := range r.Errors {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// countFailures splits Errors into unknown symbols and provider failures.
func (r *Result) countFailures() (notFound, upstream int) {
	for _, err := range r.Errors {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			notFound++
		case errors.Is(err, apperr.ErrUpstream):
			upstream++
		}
	}
	return notFound, upstream
}

type cacheEntry struct {
	result  *Result
	expires time.Time
}

// Gateway fronts a Provider with a process-wide, time-bounded memo keyed by
// the symbol set and period. It never retries; each miss is one call per symbol.
type Gateway struct {
	provider Provider
	ttl      time.Duration
	log      *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewGateway creates a gateway. ttl <= 0 falls back to DefaultCacheTTL.
func NewGateway(provider Provider, ttl time.Duration, log *zap.Logger) *Gateway {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Gateway{
		provider: provider,
		ttl:      ttl,
		log:      log.Named("market"),
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
	}
}

func cacheKey(symbols []string, period Period) string {
	return strings.Join(symbols, ",") + "|" + string(period)
}

// Quote returns series and metadata for every symbol over period.
//
// Symbols the provider does not know are reported in Result.Errors as
// apperr.ErrNotFound and do not fail the call. Only when every symbol failed
// because the provider is unreachable is the Result returned together with an
// error matching apperr.ErrUpstream. Answers containing upstream failures are
// not memoized.
func (g *Gateway) Quote(ctx context.Context, symbols []string, period Period) (*Result, error) {
	set, err := normalizeSymbols(symbols)
	if err != nil {
		return nil, err
	}
	period, err = ParsePeriod(string(period))
	if err != nil {
		return nil, err
	}

	key := cacheKey(set, period)
	if res, ok := g.lookup(key); ok {
		g.log.Debug("Quote cache hit", zap.String("key", key))
		return res, nil
	}

	l := g.log.With(zap.String("request_id", uuid.NewString()), zap.String("key", key))
	l.Debug("Quote cache miss, fetching")

	res := &Result{
		Period:    period,
		Quotes:    make(map[string]*Quote, len(set)),
		Errors:    make(map[string]error),
		FetchedAt: g.now(),
	}
	for _, symbol := range set {
		q, err := g.provider.History(ctx, symbol, period)
		if err != nil {
			res.Errors[symbol] = err
			continue
		}
		res.Quotes[symbol] = q
	}

	if notFound, upstream := res.countFailures(); upstream > 0 {
		l.Warn("Quote incomplete, not caching", zap.Strings("failed", res.Failed()))
		if len(res.Quotes) == 0 && notFound == 0 {
			return res, apperr.Upstream("quote "+key, errors.Join(mapValues(res.Errors)...))
		}
		return res, nil
	}

	g.store(key, res)
	l.Info("Fetched quotes", zap.Int("ok", len(res.Quotes)), zap.Strings("not_found", res.Failed()))
	return res, nil
}

// Clear drops every memoized answer.
func (g *Gateway) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := len(g.entries)
	g.entries = make(map[string]cacheEntry)
	g.log.Info("Quote cache cleared", zap.Int("entries", n))
}

// lookup returns a live entry, evicting it if it has expired.
func (g *Gateway) lookup(key string) (*Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.entries[key]
	if !ok {
		return nil, false
	}
	if !g.now().Before(e.expires) {
		delete(g.entries, key)
		return nil, false
	}
	cached := *e.result
	cached.Cached = true
	return &cached, true
}

func (g *Gateway) store(key string, res *Result) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[key] = cacheEntry{result: res, expires: g.now().Add(g.ttl)}
}

func mapValues(m map[string]error) []error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]error, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
