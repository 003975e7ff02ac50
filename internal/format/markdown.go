package format

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"investment-assistant-go/internal/market"
	"investment-assistant-go/internal/models"
	"investment-assistant-go/internal/store"
)

const dateTime = "2006-01-02 15:04"

// cell escapes text for use inside a Markdown table.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func localTime(t time.Time) string {
	return t.Local().Format(dateTime)
}

// StatsMarkdown renders the dashboard counters and totals.
func StatsMarkdown(st *store.Stats, cur string) string {
	var b strings.Builder
	b.WriteString("# Overview\n\n")
	b.WriteString("| Records | Count |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Trend / idea pairs | %d |\n", st.TrendIdeas)
	fmt.Fprintf(&b, "| Weekly trends | %d |\n", st.WeeklyTrends)
	fmt.Fprintf(&b, "| Trade ideas | %d |\n", st.TradeIdeas)
	fmt.Fprintf(&b, "| Active ideas | %d |\n", st.ActiveIdeas)
	fmt.Fprintf(&b, "| Completed ideas | %d |\n", st.CompletedIdeas)
	fmt.Fprintf(&b, "| Cancelled ideas | %d |\n", st.CancelledIdeas)
	fmt.Fprintf(&b, "| Trades | %d |\n", st.Trades)
	fmt.Fprintf(&b, "| Prompts | %d |\n", st.Prompts)

	b.WriteString("\n## Trade totals\n\n| | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Total | %s |\n", Money(st.TotalAmount, cur))
	fmt.Fprintf(&b, "| Bought | %s |\n", Money(st.BuyAmount, cur))
	fmt.Fprintf(&b, "| Sold | %s |\n", Money(st.SellAmount, cur))
	fmt.Fprintf(&b, "| Net | %s |\n", SignedMoney(st.NetAmount, cur))

	if len(st.RecentTrades) > 0 {
		b.WriteString("\n## Recent trades\n\n")
		b.WriteString(TradesMarkdown(st.RecentTrades, cur))
	}
	return b.String()
}

// TradesMarkdown renders trades as a table.
func TradesMarkdown(trades []models.TradeRecord, cur string) string {
	if len(trades) == 0 {
		return "_No trades recorded._\n"
	}
	var b strings.Builder
	b.WriteString("| # | Date | Symbol | Side | Quantity | Price | Amount | Rationale |\n")
	b.WriteString("|---:|---|---|---|---:|---:|---:|---|\n")
	for _, t := range trades {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			t.ID, localTime(t.TradedAt), t.Symbol, t.Side,
			t.Quantity.String(), Money(t.Price, cur), Money(t.Amount, cur), cell(t.Rationale))
	}
	return b.String()
}

// IdeasMarkdown renders trade ideas as a table.
func IdeasMarkdown(ideas []models.TradeIdea) string {
	if len(ideas) == 0 {
		return "_No trade ideas._\n"
	}
	var b strings.Builder
	b.WriteString("| # | Symbol | Status | Entry | Target | Stop | Description |\n")
	b.WriteString("|---:|---|---|---:|---:|---:|---|\n")
	for _, i := range ideas {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			i.ID, i.Symbol, i.Status, Price(i.EntryPrice), Price(i.TargetPrice), Price(i.StopLoss), cell(i.Description))
	}
	return b.String()
}

// TrendMarkdown renders a trend report followed by its idea. The texts are
// user-written Markdown and are passed through untouched.
func TrendMarkdown(p *models.TrendIdeaPair) string {
	var b strings.Builder
	title := p.Title
	if title == "" {
		title = fmt.Sprintf("Trend #%d", p.ID)
	}
	fmt.Fprintf(&b, "# %s\n\n_%s_\n\n## Trend\n\n%s\n\n## Idea\n\n", title, localTime(p.CreatedAt), p.Trend)
	if p.HasIdea() {
		b.WriteString(p.Idea)
	} else {
		b.WriteString("_No idea yet._")
	}
	b.WriteString("\n")
	return b.String()
}

// QuotesMarkdown renders a comparison table of the symbols in res followed by
// the symbols that could not be fetched.
func QuotesMarkdown(res *market.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Quotes (%s)\n\n", res.Period)
	if len(res.Quotes) > 0 {
		b.WriteString("| Symbol | Name | Last | Change | Change % | Period return | 52w range |\n")
		b.WriteString("|---|---|---:|---:|---:|---:|---|\n")
		for _, sym := range sortedKeys(res.Quotes) {
			q := res.Quotes[sym]
			s, ok := q.Summary()
			if !ok {
				fmt.Fprintf(&b, "| %s | %s | - | - | - | - | - |\n", sym, cell(q.Meta.Name))
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s - %s |\n",
				sym, cell(q.Meta.Name), Money(s.Last, q.Meta.Currency), SignedMoney(s.Change, q.Meta.Currency),
				Percent(s.ChangePct), Percent(s.ReturnPct),
				Price(q.Meta.FiftyTwoWeekLow), Price(q.Meta.FiftyTwoWeekHigh))
		}
	}
	if failed := res.Failed(); len(failed) > 0 {
		b.WriteString("\n**Unavailable:**\n\n")
		for _, sym := range failed {
			fmt.Fprintf(&b, "- %s: %s\n", sym, res.Errors[sym])
		}
	}
	if res.Cached {
		fmt.Fprintf(&b, "\n_Cached result from %s._\n", localTime(res.FetchedAt))
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
