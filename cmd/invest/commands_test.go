package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"investment-assistant-go/internal/app"
	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/config"
	"investment-assistant-go/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const chartJSON = `{"chart":{"result":[{"meta":{"currency":"USD","symbol":"AAPL","longName":"Apple Inc."},
"timestamp":[1717372800,1717459200],
"indicators":{"quote":[{"open":[100,101],"high":[101,103],"low":[99,100],"close":[100,102],"volume":[10,20]}]}}],"error":null}}`

func setupTestApp(t *testing.T) *app.App {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
			return
		}
		_, _ = w.Write([]byte(chartJSON))
	}))
	t.Cleanup(server.Close)

	cfg := config.Config{
		Database: config.Database{Path: filepath.Join(t.TempDir(), "cli.db")},
		Market:   config.Market{BaseURL: server.URL, Timeout: 5 * time.Second, CacheTTL: time.Minute},
	}
	a, err := app.Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	opts.raw = true
	opts.currency = "USD"
	return a
}

// runCmd parses args with the command's own flags and runs it against a.
func runCmd(t *testing.T, a *app.App, cmd interface {
	runner
	SetFlags(*flag.FlagSet)
}, args ...string) (string, error) {
	t.Helper()
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse(args))
	var out bytes.Buffer
	err := cmd.run(context.Background(), a, f, &out)
	return out.String(), err
}

func TestAddTradeAndStats(t *testing.T) {
	a := setupTestApp(t)

	out, err := runCmd(t, a, &addTradeCmd{}, "-symbol", "msft", "-qty", "10", "-price", "300.00", "-at", "2024-06-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded trade #1: buy 10 MSFT @ $300.00 = $3,000.00")

	_, err = runCmd(t, a, &addTradeCmd{}, "-symbol", "AAPL", "-side", "sell", "-qty", "2", "-price", "150", "-at", "2024-06-04T10:00:00Z")
	require.NoError(t, err)

	out, err = runCmd(t, a, &tradesCmd{}, "-symbol", "MSFT")
	require.NoError(t, err)
	assert.Contains(t, out, "| MSFT | buy | 10 | $300.00 | $3,000.00 |")
	assert.NotContains(t, out, "AAPL")

	out, err = runCmd(t, a, &statsCmd{}, "-recent", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "| Trades | 2 |")
	assert.Contains(t, out, "| Bought | $3,000.00 |")
	assert.Contains(t, out, "| Sold | $300.00 |")
	assert.Contains(t, out, "| Net | +$2,700.00 |")
}

func TestAddTradeValidation(t *testing.T) {
	a := setupTestApp(t)

	_, err := runCmd(t, a, &addTradeCmd{}, "-symbol", "MSFT", "-qty", "ten", "-price", "1")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = runCmd(t, a, &addTradeCmd{}, "-symbol", "MSFT", "-qty", "1", "-price", "1", "-at", "yesterday")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	st, err := a.Store.Stats(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, st.Trades)
}

func TestIdeasCmd(t *testing.T) {
	a := setupTestApp(t)
	_, err := a.Store.CreateTradeIdea(context.Background(), store.TradeIdeaInput{Symbol: "AAPL", EntryPrice: "180", Description: "Buy the dip"})
	require.NoError(t, err)

	out, err := runCmd(t, a, &ideasCmd{}, "-status", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "| AAPL | active | 180 |")

	out, err = runCmd(t, a, &ideasCmd{}, "-status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "_No trade ideas._")
}

func TestTrendCmd(t *testing.T) {
	a := setupTestApp(t)
	ctx := context.Background()
	pair, err := a.Store.CreateTrendIdea(ctx, store.TrendIdeaInput{Title: "Energy", Trend: "Grid demand grows", Idea: "Utilities"})
	require.NoError(t, err)
	_, _, err = a.Store.UpsertWeeklyTrend(ctx, store.WeeklyTrendInput{WeekStart: "2024-06-03", Content: "Quiet week"})
	require.NoError(t, err)

	out, err := runCmd(t, a, &trendCmd{})
	require.NoError(t, err)
	assert.Contains(t, out, "| Energy |")
	assert.Contains(t, out, "| yes |")

	out, err = runCmd(t, a, &trendCmd{}, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "# Energy")
	assert.Contains(t, out, "Utilities")
	assert.Equal(t, uint(1), pair.ID)

	out, err = runCmd(t, a, &trendCmd{}, "-week", "2024-06-05")
	require.NoError(t, err)
	assert.Contains(t, out, "# Week of 2024-06-03")

	_, err = runCmd(t, a, &trendCmd{}, "42")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = runCmd(t, a, &trendCmd{}, "abc")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestQuoteCmd(t *testing.T) {
	a := setupTestApp(t)

	out, err := runCmd(t, a, &quoteCmd{}, "-period", "1mo", "aapl", "NOTREAL")
	require.NoError(t, err)
	assert.Contains(t, out, "# Quotes (1mo)")
	assert.Contains(t, out, "| AAPL | Apple Inc. | $102.00 | +$2.00 | +2.00% |")
	assert.Contains(t, out, "- NOTREAL:")

	_, err = runCmd(t, a, &quoteCmd{})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestParseTime(t *testing.T) {
	at, err := parseTime("")
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	at, err = parseTime("2024-06-04T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC), at)
}
