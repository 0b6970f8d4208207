package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/logiflow/logiflow-backend/internal/pipeline/dataset"
	"github.com/logiflow/logiflow-backend/internal/pipeline/export"
	"github.com/logiflow/logiflow-backend/internal/pipeline/handler"
	"github.com/logiflow/logiflow-backend/internal/pipeline/materializer"
	"github.com/logiflow/logiflow-backend/internal/pipeline/overlay"
	"github.com/logiflow/logiflow-backend/internal/pipeline/sequencer"
	"github.com/logiflow/logiflow-backend/internal/pipeline/service"
	"github.com/logiflow/logiflow-backend/internal/pipeline/state"
	"github.com/logiflow/logiflow-backend/pkg/clock"
	"github.com/logiflow/logiflow-backend/pkg/config"
	"github.com/logiflow/logiflow-backend/pkg/httputil"
	"github.com/logiflow/logiflow-backend/pkg/logger"
)

func main() {
	// Load configuration with validation (fails fast if tuning is unusable)
	cfg, err := config.LoadWithValidation("pipeline-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("pipeline-service", cfg.Server.Environment)
	log.Info().Msg("starting Pipeline Service")

	// Session state lives in memory only; every start is a fresh session
	store := state.NewStore()
	clk := clock.New()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Initialize pipeline components
	mat := materializer.New(dataset.Invoices(), clk.Now, rnd.Float64)
	seq := sequencer.New(store, mat, clk, sequencer.DefaultSchedule(cfg.Pipeline.StageInterval), log)
	exports := export.New(store, clk, cfg.Export.SettleDelay, cfg.Export.NotificationDuration, log)
	overlays := overlay.New(store, log)

	// Initialize service and handler
	pipelineService := service.NewPipelineService(store, seq, exports, overlays, log)
	pipelineHandler := handler.NewHandler(pipelineService, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))

	// CORS for the browser UI consuming the state snapshots
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.Server.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"service": "pipeline-service",
		})
	})

	// API routes
	r.Route("/api/v1/pipeline", pipelineHandler.RegisterRoutes)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
