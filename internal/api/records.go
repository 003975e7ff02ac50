package api

import (
	"net/http"

	"investment-assistant-go/internal/models"
	"investment-assistant-go/internal/store"

	"github.com/gorilla/mux"
)

// defaultTradeLimit bounds GET /api/trades when no limit is given. limit=0 lists all.
const defaultTradeLimit = 100

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTrends returns trend/idea pairs, newest first.
func (h *Handler) ListTrends(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items, err := h.store.ListTrendIdeas(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateTrend(w http.ResponseWriter, r *http.Request) {
	var in store.TrendIdeaInput
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.CreateTrendIdea(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.GetTrendIdea(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) UpdateTrend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var patch store.TrendIdeaPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.UpdateTrendIdea(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// SetTrendIdea replaces the idea half of a pair. Body: {"idea": "..."}.
func (h *Handler) SetTrendIdea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var body struct {
		Idea string `json:"idea"`
	}
	if err := decode(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.SetTrendIdea(r.Context(), id, body.Idea)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) DeleteTrend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.store.DeleteTrendIdea(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListWeeklyTrends(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", store.DefaultWeeklyLimit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items, err := h.store.ListWeeklyTrends(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// UpsertWeeklyTrend answers 201 when the week had no note yet, 200 otherwise.
func (h *Handler) UpsertWeeklyTrend(w http.ResponseWriter, r *http.Request) {
	var in store.WeeklyTrendInput
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, created, err := h.store.UpsertWeeklyTrend(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, rec)
}

func (h *Handler) GetWeeklyTrend(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.GetWeeklyTrend(r.Context(), mux.Vars(r)["week"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) DeleteWeeklyTrend(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.store.DeleteWeeklyTrend(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListIdeas returns trade ideas, optionally filtered by ?status=.
func (h *Handler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	filter := store.TradeIdeaFilter{Status: r.URL.Query().Get("status")}
	items, err := h.store.ListTradeIdeas(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	var in store.TradeIdeaInput
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.CreateTradeIdea(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) GetIdea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.GetTradeIdea(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var patch store.TradeIdeaPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.UpdateTradeIdea(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// SetIdeaStatus moves an idea between active, completed and cancelled.
// Body: {"status": "completed"}.
func (h *Handler) SetIdeaStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var body struct {
		Status models.IdeaStatus `json:"status"`
	}
	if err := decode(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.SetTradeIdeaStatus(r.Context(), id, body.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.store.DeleteTradeIdea(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTrades returns executed trades, most recent first. Supports ?symbol= and ?limit=.
func (h *Handler) ListTrades(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultTradeLimit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	filter := store.TradeRecordFilter{Symbol: r.URL.Query().Get("symbol"), Limit: limit}
	items, err := h.store.ListTradeRecords(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	var in store.TradeRecordInput
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.CreateTradeRecord(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) GetTrade(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.GetTradeRecord(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var patch store.TradeRecordPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.UpdateTradeRecord(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.store.DeleteTradeRecord(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPrompts returns prompts, optionally filtered by ?category=.
func (h *Handler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	filter := store.PromptFilter{Category: r.URL.Query().Get("category")}
	items, err := h.store.ListPrompts(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	var in store.PromptInput
	if err := decode(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.CreatePrompt(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.GetPrompt(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var patch store.PromptPatch
	if err := decode(r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}
	rec, err := h.store.UpdatePrompt(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.store.DeletePrompt(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PromptCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.store.PromptCategories(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// Stats returns counts and trade totals. ?recent= sets how many trades to include.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	recent, err := queryInt(r, "recent", store.DefaultRecentTrades)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.store.Stats(r.Context(), recent)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
