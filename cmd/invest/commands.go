package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"investment-assistant-go/internal/app"
	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/format"
	"investment-assistant-go/internal/market"
	"investment-assistant-go/internal/store"

	"github.com/google/subcommands"
)

type statsCmd struct {
	recent int
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show record counts and trade totals" }
func (*statsCmd) Usage() string {
	return `stats [-recent <n>]

  Prints how many trends, ideas, trades and prompts are stored, the bought,
  sold and net trade amounts, and the most recent trades.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.recent, "recent", store.DefaultRecentTrades, "number of recent trades to list")
}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c, f)
}

func (c *statsCmd) run(ctx context.Context, a *app.App, _ *flag.FlagSet, w io.Writer) error {
	st, err := a.Store.Stats(ctx, c.recent)
	if err != nil {
		return err
	}
	return printMarkdown(w, format.StatsMarkdown(st, opts.currency))
}

type tradesCmd struct {
	symbol string
	limit  int
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "list executed trades" }
func (*tradesCmd) Usage() string {
	return `trades [-symbol <ticker>] [-limit <n>]

  Lists recorded trades, most recent first. -limit 0 lists every trade.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "only trades of this ticker")
	f.IntVar(&c.limit, "limit", 20, "maximum number of trades")
}

func (c *tradesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c, f)
}

func (c *tradesCmd) run(ctx context.Context, a *app.App, _ *flag.FlagSet, w io.Writer) error {
	trades, err := a.Store.ListTradeRecords(ctx, store.TradeRecordFilter{Symbol: c.symbol, Limit: c.limit})
	if err != nil {
		return err
	}
	return printMarkdown(w, format.TradesMarkdown(trades, opts.currency))
}

type addTradeCmd struct {
	symbol    string
	side      string
	quantity  string
	price     string
	at        string
	rationale string
}

func (*addTradeCmd) Name() string     { return "add-trade" }
func (*addTradeCmd) Synopsis() string { return "record an executed trade" }
func (*addTradeCmd) Usage() string {
	return `add-trade -symbol <ticker> -qty <quantity> -price <price> [-side buy|sell] [-at <time>] [-rationale <text>]

  Records a trade. The amount is computed as quantity × price.
  -at accepts YYYY-MM-DD or RFC 3339 and defaults to now.
`
}

func (c *addTradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "ticker symbol (required)")
	f.StringVar(&c.side, "side", "buy", "buy or sell")
	f.StringVar(&c.quantity, "qty", "", "quantity, decimal (required)")
	f.StringVar(&c.price, "price", "", "unit price, decimal (required)")
	f.StringVar(&c.at, "at", "", "trade time")
	f.StringVar(&c.rationale, "rationale", "", "why the trade was made")
}

func (c *addTradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c, f)
}

func (c *addTradeCmd) run(ctx context.Context, a *app.App, _ *flag.FlagSet, w io.Writer) error {
	at, err := parseTime(c.at)
	if err != nil {
		return err
	}
	rec, err := a.Store.CreateTradeRecord(ctx, store.TradeRecordInput{
		Symbol:    c.symbol,
		Side:      c.side,
		Quantity:  c.quantity,
		Price:     c.price,
		TradedAt:  at,
		Rationale: c.rationale,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Recorded trade #%d: %s %s %s @ %s = %s\n",
		rec.ID, rec.Side, rec.Quantity, rec.Symbol,
		format.Money(rec.Price, opts.currency), format.Money(rec.Amount, opts.currency))
	return err
}

// parseTime accepts a date or an RFC 3339 timestamp. Blank means zero, which
// the store replaces with the current time.
func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Invalid("at", "expected YYYY-MM-DD or RFC 3339, got "+raw)
}

type ideasCmd struct {
	status string
}

func (*ideasCmd) Name() string     { return "ideas" }
func (*ideasCmd) Synopsis() string { return "list trade ideas" }
func (*ideasCmd) Usage() string {
	return `ideas [-status active|completed|cancelled]

  Lists trade ideas, newest first.
`
}

func (c *ideasCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.status, "status", "", "only ideas with this status")
}

func (c *ideasCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c, f)
}

func (c *ideasCmd) run(ctx context.Context, a *app.App, _ *flag.FlagSet, w io.Writer) error {
	ideas, err := a.Store.ListTradeIdeas(ctx, store.TradeIdeaFilter{Status: c.status})
	if err != nil {
		return err
	}
	return printMarkdown(w, format.IdeasMarkdown(ideas))
}

type quoteCmd struct {
	period string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "compare price history of one or more tickers" }
func (*quoteCmd) Usage() string {
	return `quote [-period <period>] <ticker> [<ticker>...]

  Fetches daily prices and prints last close, change and period return.
  Periods: 1d 5d 1mo 3mo 6mo 1y 2y 5y 10y ytd max.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", string(market.DefaultPeriod), "lookback period")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c, f)
}

func (c *quoteCmd) run(ctx context.Context, a *app.App, f *flag.FlagSet, w io.Writer) error {
	symbols := market.ParseSymbols(strings.Join(f.Args(), " "))
	res, err := a.Gateway.Quote(ctx, symbols, market.Period(c.period))
	if err != nil {
		return err
	}
	return printMarkdown(w, format.QuotesMarkdown(res))
}

type trendCmd struct {
	week string
}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "read trend reports and their ideas" }
func (*trendCmd) Usage() string {
	return `trend [<id>] | trend -week <YYYY-MM-DD>

  Without arguments lists trend reports. With an id prints that report and
  its idea. With -week prints the weekly trend note for that week.
`
}

func (c *trendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.week, "week", "", "any date within the week to show")
}

func (c *trendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c, f)
}

func (c *trendCmd) run(ctx context.Context, a *app.App, f *flag.FlagSet, w io.Writer) error {
	if c.week != "" {
		note, err := a.Store.GetWeeklyTrend(ctx, c.week)
		if err != nil {
			return err
		}
		return printMarkdown(w, fmt.Sprintf("# Week of %s\n\n%s\n", note.WeekStart, note.Content))
	}

	if f.NArg() == 0 {
		pairs, err := a.Store.ListTrendIdeas(ctx, 0)
		if err != nil {
			return err
		}
		var b strings.Builder
		b.WriteString("| # | Title | Created | Idea |\n|---:|---|---|---|\n")
		for _, p := range pairs {
			idea := "no"
			if p.HasIdea() {
				idea = "yes"
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", p.ID, strings.ReplaceAll(p.Title, "|", `\|`), p.CreatedAt.Local().Format(time.DateOnly), idea)
		}
		if len(pairs) == 0 {
			b.Reset()
			b.WriteString("_No trend reports._\n")
		}
		return printMarkdown(w, b.String())
	}

	id, err := strconv.ParseUint(f.Arg(0), 10, 64)
	if err != nil || id == 0 {
		return apperr.Invalid("id", "must be a positive integer")
	}
	pair, err := a.Store.GetTrendIdea(ctx, uint(id))
	if err != nil {
		return err
	}
	return printMarkdown(w, format.TrendMarkdown(pair))
}
