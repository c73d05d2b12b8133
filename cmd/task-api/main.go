package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	server "task-api"
	"task-api/internal/config"
	"task-api/internal/logger"
	"task-api/internal/manager"
	"task-api/internal/models"
	"task-api/internal/storage"
)

func main() {
	configPath := flag.String("config", os.Getenv("TASKS_CONFIG"), "Path to TOML config file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error(ctx, err, "load config")
		os.Exit(1)
	}
	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)

	var seed []models.Task
	if cfg.Seed {
		seed = storage.SeedTasks()
	}
	tm := manager.NewTaskManager(storage.NewMemoryStorage(seed))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.NewRouterWithConfig(tm, server.Config{Metrics: cfg.MetricsEnabled}),
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
	}

	go func() {
		logger.Info(ctx, "server started", "addr", cfg.Addr, "tasks", len(seed))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, err, "listen")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout.Duration)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, err, "server forced to shutdown")
		os.Exit(1)
	}

	logger.Info(ctx, "server exited")
}
