package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"investment-assistant-go/internal/api"
	"investment-assistant-go/internal/app"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	a, err := app.New(ctx, "./configs")
	if err != nil {
		// The logger may not exist yet.
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()
	log := a.Log

	handler := api.NewHandler(log, a.Store, a.Gateway).Router()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: a.Config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", api.HeaderRequestID},
		ExposedHeaders: []string{api.HeaderRequestID},
	})

	server := api.NewServer(a.Config.Server.Port, corsMiddleware.Handler(handler), log)
	serverErr := server.Start()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigchan:
		log.Info("Shutdown signal received, gracefully shutting down...")
	case err, ok := <-serverErr:
		if ok {
			log.Error("Server stopped unexpectedly", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server has been shut down.")
}
