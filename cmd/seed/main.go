package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"watchlist_backend/internal/app/di"
	"watchlist_backend/internal/config"
	platformentity "watchlist_backend/internal/feature/platforms/domain/entity"
	"watchlist_backend/internal/feature/platforms/usecase"
	"watchlist_backend/internal/platform/db"
	"watchlist_backend/internal/platform/logging"
	infraredis "watchlist_backend/internal/platform/redis"
)

// 使い方: seed [name ...]
// 引数がない場合は既定のプラットフォーム一覧を登録します。
func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg := config.LoadStorage()
	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	gdb, err := db.Open(cfg.DB, &platformentity.Platform{})
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.Redis); err == nil {
		rdb = tmp
		defer rdb.Close()
	}

	uc := usecase.NewPlatformUsecase(di.NewPlatformRepository(rdb, gdb, cfg.PlatformCacheTTL))

	names := os.Args[1:]
	if len(names) == 0 {
		names = usecase.DefaultPlatforms
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	inserted, err := uc.Seed(ctx, names)
	if err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed ok", "requested", len(names), "inserted", inserted)
}
