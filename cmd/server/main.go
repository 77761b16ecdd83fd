package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/osuda/config"
	"github.com/d60-Lab/osuda/internal/api"
	"github.com/d60-Lab/osuda/internal/api/handler"
	"github.com/d60-Lab/osuda/internal/repository"
	"github.com/d60-Lab/osuda/internal/service"
	"github.com/d60-Lab/osuda/internal/storage"
	"github.com/d60-Lab/osuda/pkg/logger"
	"github.com/d60-Lab/osuda/pkg/telemetry"
)

const shutdownTimeout = 5 * time.Second

// @title Osuda API
// @version 1.0
// @description Personal micro-journaling service
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := logger.Init(cfg.Log.Level, cfg.Server.Mode); err != nil {
		logger.Fatal("init logger", zap.Error(err))
	}
	defer logger.Sync()

	gin.SetMode(cfg.Server.Mode)

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Fatal("init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()

	tracing := cfg.Trace.Endpoint != ""
	if tracing {
		stopTracing, err := telemetry.Init(ctx, "osuda", cfg.Trace.Endpoint)
		if err != nil {
			logger.Fatal("init tracing", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := stopTracing(shutdownCtx); err != nil {
				logger.Warn("stop tracing", zap.Error(err))
			}
		}()
	}

	store, err := storage.Open(cfg)
	if err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}

	repo := repository.NewPostRepository(store)
	if err := repo.Load(ctx); err != nil {
		logger.Fatal("load posts", zap.Error(err))
	}
	logger.Info("posts loaded",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("count", len(repo.List(ctx))))

	svc := service.NewPostService(repo)
	h := handler.NewHandler(repo, svc)
	r := api.NewRouter(h, api.Options{Tracing: tracing})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	// one last write, same as saving on SIGINT
	if err := repo.Flush(shutdownCtx); err != nil {
		logger.Error("final flush", zap.Error(err))
	}
	logger.Info("server stopped")
}
