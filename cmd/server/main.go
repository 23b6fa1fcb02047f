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
	redisv9 "github.com/redis/go-redis/v9"

	"watchlist_backend/internal/app/di"
	"watchlist_backend/internal/app/router"
	"watchlist_backend/internal/config"
	authentity "watchlist_backend/internal/feature/auth/domain/entity"
	platformentity "watchlist_backend/internal/feature/platforms/domain/entity"
	watchlistentity "watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/platform/db"
	infrahttp "watchlist_backend/internal/platform/http"
	jwtmw "watchlist_backend/internal/platform/jwt"
	"watchlist_backend/internal/platform/logging"
	"watchlist_backend/internal/platform/metrics"
	infraredis "watchlist_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// db
	gdb, err := db.Open(cfg.DB, &authentity.User{}, &platformentity.Platform{}, &watchlistentity.Item{})
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}()
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.Redis); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	handlers := di.NewHandlers(di.Deps{
		DB:               gdb,
		Redis:            rdb,
		Tokens:           jwtmw.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		BcryptCost:       cfg.BcryptCost,
		PlatformCacheTTL: cfg.PlatformCacheTTL,
	})

	// ルータ生成
	engine := router.NewRouter(handlers,
		router.WithCORS(cfg.CORSOrigins),
		router.WithRequestTimeout(cfg.DB.AcquireTimeout),
		router.WithMetrics(metrics.NewRegistry()),
	)

	srv := infrahttp.NewServer(":"+cfg.Port, engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		return
	}
	slog.Info("server stopped")
}
