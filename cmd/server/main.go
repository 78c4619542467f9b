// cmd/server is the main service entry point.
// It wires together all layers and starts the HTTP server.
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
	"github.com/desyatov-student/explore-with-me/internal/statsclient"
	"github.com/desyatov-student/explore-with-me/internal/timefmt"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env).With(slog.String("app", cfg.AppName))
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Error("database connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.MigrateMain(ctx, pool); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tf := timefmt.UTC()

	eventRepo := repository.NewEventRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	compilationRepo := repository.NewCompilationRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	stats := statsclient.New(cfg.Client, cfg.AppName, tf, log)

	eventSvc := service.NewEventService(eventRepo, requestRepo, userRepo, categoryRepo, stats, tf, log)
	requestSvc := service.NewRequestService(requestRepo, eventRepo, userRepo, tf, log)
	userSvc := service.NewUserService(userRepo, log)
	categorySvc := service.NewCategoryService(categoryRepo, log)
	compilationSvc := service.NewCompilationService(compilationRepo, eventRepo, tf, log)
	commentSvc := service.NewCommentService(commentRepo, eventRepo, userRepo, tf, log)

	h := handler.New(eventSvc, requestSvc, userSvc, categorySvc, compilationSvc, commentSvc, stats, tf, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      h.Router(log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("server listening", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("server stopped")
}
