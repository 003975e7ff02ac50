package api

import (
	"errors"
	"net/http"
	"time"

	"investment-assistant-go/internal/apperr"
	"investment-assistant-go/internal/market"
)

type quoteView struct {
	*market.Quote
	Summary *market.Summary `json:"summary,omitempty"`
}

// QuotesResponse is the JSON shape of a gateway result. Errors maps each
// failed symbol to its reason.
type QuotesResponse struct {
	Period    market.Period        `json:"period"`
	Quotes    map[string]quoteView `json:"quotes"`
	NotFound  []string             `json:"not_found"`
	Errors    map[string]string    `json:"errors"`
	FetchedAt time.Time            `json:"fetched_at"`
	Cached    bool                 `json:"cached"`
}

// quotesErrorBody keeps the per-symbol reasons when the whole call fails.
type quotesErrorBody struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

func newQuotesResponse(res *market.Result) QuotesResponse {
	out := QuotesResponse{
		Period:    res.Period,
		Quotes:    make(map[string]quoteView, len(res.Quotes)),
		NotFound:  []string{},
		Errors:    make(map[string]string, len(res.Errors)),
		FetchedAt: res.FetchedAt,
		Cached:    res.Cached,
	}
	for sym, q := range res.Quotes {
		v := quoteView{Quote: q}
		if s, ok := q.Summary(); ok {
			v.Summary = &s
		}
		out.Quotes[sym] = v
	}
	for _, sym := range res.Failed() {
		err := res.Errors[sym]
		if errors.Is(err, apperr.ErrNotFound) {
			out.NotFound = append(out.NotFound, sym)
		}
		out.Errors[sym] = err.Error()
	}
	return out
}

// Quotes serves GET /api/quotes?symbols=AAPL,MSFT&period=1mo. Unknown symbols
// are listed in not_found; the call fails with 502 only when the provider failed
// for every symbol, and the body still maps each symbol to its reason.
func (h *Handler) Quotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	symbols := market.ParseSymbols(q.Get("symbols"))
	res, err := h.quotes.Quote(r.Context(), symbols, market.Period(q.Get("period")))
	if err != nil && res != nil && len(res.Errors) > 0 {
		writeJSON(w, statusFor(err), quotesErrorBody{
			Error:  err.Error(),
			Errors: newQuotesResponse(res).Errors,
		})
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuotesResponse(res))
}

// ClearQuotes drops every memoized quote.
func (h *Handler) ClearQuotes(w http.ResponseWriter, r *http.Request) {
	h.quotes.Clear()
	w.WriteHeader(http.StatusNoContent)
}
