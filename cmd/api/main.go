package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentalhub/internal/config"
	"rentalhub/internal/database"
	"rentalhub/internal/events"
	"rentalhub/internal/pkg/logger"
	"rentalhub/internal/pkg/session"
	"rentalhub/internal/repository"
	"rentalhub/internal/router"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.SetDefault(logger.New(os.Stdout, cfg.LogLevel))
	slog.SetDefault(logger.Default())

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DSN(), database.Options{Debug: cfg.Debug})
	if err != nil {
		logger.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db, repository.Models()...); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	revoker, closeRevoker := buildRevoker(ctx, cfg)
	defer closeRevoker()

	publisher := buildPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close event publisher", "error", err)
		}
	}()

	r, closeRouter := router.New(router.Options{
		Config:    cfg,
		DB:        db,
		Revoker:   revoker,
		Publisher: publisher,
	})
	defer closeRouter()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}

// buildRevoker uses Redis when REDIS_URL is set, otherwise an in-process list.
func buildRevoker(ctx context.Context, cfg *config.Config) (session.Revoker, func()) {
	if cfg.RedisURL != "" {
		client, err := session.DialRedis(ctx, cfg.RedisURL)
		if err == nil {
			logger.Info("session revocation backed by redis")
			return session.NewRedisRevoker(client), func() { _ = client.Close() }
		}
		logger.Warn("redis unavailable, using in-memory revocation", "error", err)
	}
	mem := session.NewMemoryRevoker(10000)
	return mem, mem.Stop
}

func buildPublisher(cfg *config.Config) events.Publisher {
	if cfg.NATSURL == "" {
		return events.Noop{}
	}
	pub, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		logger.Warn("nats unavailable, booking events disabled", "error", err)
		return events.Noop{}
	}
	logger.Info("booking events published to nats", "url", cfg.NATSURL)
	return pub
}
