// cmd/stats is the stats service entry point. It records endpoint hits
// and serves on-read aggregates to the main service.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/desyatov-student/explore-with-me/internal/config"
	"github.com/desyatov-student/explore-with-me/internal/database"
	"github.com/desyatov-student/explore-with-me/internal/handler"
	"github.com/desyatov-student/explore-with-me/internal/logger"
	"github.com/desyatov-student/explore-with-me/internal/repository"
	"github.com/desyatov-student/explore-with-me/internal/service"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env).With(slog.String("app", "ewm-stats-service"))
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.StatsDB, log)
	if err != nil {
		log.Error("database connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.MigrateStats(ctx, pool); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tf := timefmt.UTC()

	hitRepo := repository.NewHitRepository(pool)
	statsSvc := service.NewStatsService(hitRepo, tf, log)
	h := handler.NewStatsHandler(statsSvc, tf, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Stats.Port,
		Handler:      h.Router(log),
		ReadTimeout:  cfg.Stats.ReadTimeout,
		WriteTimeout: cfg.Stats.WriteTimeout,
		IdleTimeout:  cfg.Stats.IdleTimeout,
	}

	go func() {
		log.Info("stats server listening", slog.String("port", cfg.Stats.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Stats.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("server stopped")
}
