package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"watchlist_backend/internal/app/router"
	authadapters "watchlist_backend/internal/feature/auth/adapters"
	authhandler "watchlist_backend/internal/feature/auth/transport/handler"
	authusecase "watchlist_backend/internal/feature/auth/usecase"
	platformhandler "watchlist_backend/internal/feature/platforms/transport/handler"
	platformusecase "watchlist_backend/internal/feature/platforms/usecase"
	watchlistadapters "watchlist_backend/internal/feature/watchlist/adapters"
	watchlisthandler "watchlist_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "watchlist_backend/internal/feature/watchlist/usecase"
	jwtmw "watchlist_backend/internal/platform/jwt"
)

// Deps はハンドラーの組み立てに必要な外部リソースです。
// Redis は nil でもよく、その場合はキャッシュなしで動作します。
type Deps struct {
	DB               *gorm.DB
	Redis            *redis.Client
	Tokens           *jwtmw.Manager
	BcryptCost       int
	PlatformCacheTTL time.Duration
}

// NewHandlers wires repositories, usecases and handlers for every feature.
func NewHandlers(d Deps) router.Handlers {
	// Repository
	userRepo := authadapters.NewUserRepository(d.DB)
	platformRepo := NewPlatformRepository(d.Redis, d.DB, d.PlatformCacheTTL)
	itemRepo := watchlistadapters.NewItemRepository(d.DB)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, d.Tokens, d.BcryptCost)
	platformUC := platformusecase.NewPlatformUsecase(platformRepo)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(itemRepo)

	// Handler
	return router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Platforms: platformhandler.NewPlatformHandler(platformUC),
		Watchlist: watchlisthandler.NewWatchlistHandler(watchlistUC),
		Verifier:  authUC,
	}
}
