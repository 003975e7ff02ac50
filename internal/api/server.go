// Package api exposes the store and the market gateway as a JSON REST API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"investment-assistant-go/internal/market"
	"investment-assistant-go/internal/store"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Quoter is the part of the market gateway the API needs.
type Quoter interface {
	Quote(ctx context.Context, symbols []string, period market.Period) (*market.Result, error)
	Clear()
}

var _ Quoter = (*market.Gateway)(nil)

// Handler holds dependencies for the API endpoints.
type Handler struct {
	log    *zap.Logger
	store  *store.Store
	quotes Quoter
}

// NewHandler creates a new Handler.
func NewHandler(log *zap.Logger, st *store.Store, quotes Quoter) *Handler {
	return &Handler{log: log.Named("api"), store: st, quotes: quotes}
}

// Router registers every endpoint on a new gorilla/mux router.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestID, h.accessLog)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	a := r.PathPrefix("/api").Subrouter()

	a.HandleFunc("/trends", h.ListTrends).Methods(http.MethodGet)
	a.HandleFunc("/trends", h.CreateTrend).Methods(http.MethodPost)
	a.HandleFunc("/trends/{id:[0-9]+}", h.GetTrend).Methods(http.MethodGet)
	a.HandleFunc("/trends/{id:[0-9]+}", h.UpdateTrend).Methods(http.MethodPut, http.MethodPatch)
	a.HandleFunc("/trends/{id:[0-9]+}", h.DeleteTrend).Methods(http.MethodDelete)
	a.HandleFunc("/trends/{id:[0-9]+}/idea", h.SetTrendIdea).Methods(http.MethodPut)

	a.HandleFunc("/weekly-trends", h.ListWeeklyTrends).Methods(http.MethodGet)
	a.HandleFunc("/weekly-trends", h.UpsertWeeklyTrend).Methods(http.MethodPut, http.MethodPost)
	a.HandleFunc("/weekly-trends/{week:[0-9]{4}-[0-9]{2}-[0-9]{2}}", h.GetWeeklyTrend).Methods(http.MethodGet)
	a.HandleFunc("/weekly-trends/{id:[0-9]+}", h.DeleteWeeklyTrend).Methods(http.MethodDelete)

	a.HandleFunc("/ideas", h.ListIdeas).Methods(http.MethodGet)
	a.HandleFunc("/ideas", h.CreateIdea).Methods(http.MethodPost)
	a.HandleFunc("/ideas/{id:[0-9]+}", h.GetIdea).Methods(http.MethodGet)
	a.HandleFunc("/ideas/{id:[0-9]+}", h.UpdateIdea).Methods(http.MethodPut, http.MethodPatch)
	a.HandleFunc("/ideas/{id:[0-9]+}", h.DeleteIdea).Methods(http.MethodDelete)
	a.HandleFunc("/ideas/{id:[0-9]+}/status", h.SetIdeaStatus).Methods(http.MethodPut)

	a.HandleFunc("/trades", h.ListTrades).Methods(http.MethodGet)
	a.HandleFunc("/trades", h.CreateTrade).Methods(http.MethodPost)
	a.HandleFunc("/trades/{id:[0-9]+}", h.GetTrade).Methods(http.MethodGet)
	a.HandleFunc("/trades/{id:[0-9]+}", h.UpdateTrade).Methods(http.MethodPut, http.MethodPatch)
	a.HandleFunc("/trades/{id:[0-9]+}", h.DeleteTrade).Methods(http.MethodDelete)

	a.HandleFunc("/prompts", h.ListPrompts).Methods(http.MethodGet)
	a.HandleFunc("/prompts", h.CreatePrompt).Methods(http.MethodPost)
	a.HandleFunc("/prompts/{id:[0-9]+}", h.GetPrompt).Methods(http.MethodGet)
	a.HandleFunc("/prompts/{id:[0-9]+}", h.UpdatePrompt).Methods(http.MethodPut, http.MethodPatch)
	a.HandleFunc("/prompts/{id:[0-9]+}", h.DeletePrompt).Methods(http.MethodDelete)
	a.HandleFunc("/prompt-categories", h.PromptCategories).Methods(http.MethodGet)

	a.HandleFunc("/stats", h.Stats).Methods(http.MethodGet)

	a.HandleFunc("/quotes", h.Quotes).Methods(http.MethodGet)
	a.HandleFunc("/quotes/cache", h.ClearQuotes).Methods(http.MethodDelete)

	// mux only runs middleware on matched routes, so these are wrapped by hand.
	r.NotFoundHandler = h.requestID(h.accessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found"})
	})))
	r.MethodNotAllowedHandler = h.requestID(h.accessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})))
	return r
}

// Server runs the HTTP listener.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// NewServer creates a Server listening on port.
func NewServer(port int, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger.Named("api-server"),
	}
}

// Start runs the HTTP server in a new goroutine. Listener failures are sent on
// the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server failed", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping API server...")
	return s.server.Shutdown(ctx)
}
