// Package router はHTTPルーティングとミドルウェアの組み立てを行います。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "watchlist_backend/internal/feature/auth/transport/handler"
	platformhandler "watchlist_backend/internal/feature/platforms/transport/handler"
	watchlisthandler "watchlist_backend/internal/feature/watchlist/transport/handler"
	"watchlist_backend/internal/platform/http/handler"
	"watchlist_backend/internal/platform/http/middleware"
	jwtmw "watchlist_backend/internal/platform/jwt"
	"watchlist_backend/internal/platform/metrics"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Platforms *platformhandler.PlatformHandler
	Watchlist *watchlisthandler.WatchlistHandler
	// Verifier は保護されたルートでトークンを検証する認証サービスです。
	Verifier jwtmw.TokenVerifier
}

type options struct {
	corsOrigins    []string
	requestTimeout time.Duration
	metrics        *metrics.Registry
}

// Option はルーターの任意設定です。
type Option func(*options)

// WithCORS は許可するオリジンを設定します。"*" はすべてのオリジンを許可します。
func WithCORS(origins []string) Option {
	return func(o *options) { o.corsOrigins = origins }
}

// WithRequestTimeout はリクエストごとの期限を設定します。
// DBプールの接続待ちもこの期限で打ち切られます。
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithMetrics はPrometheusのミドルウェアと /metrics を有効にします。
func WithMetrics(reg *metrics.Registry) Option {
	return func(o *options) { o.metrics = reg }
}

// NewRouter はミドルウェアとルートを登録したエンジンを返します。
func NewRouter(h Handlers, opts ...Option) *gin.Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())
	if o.metrics != nil {
		r.Use(o.metrics.GinMiddleware())
	}
	if len(o.corsOrigins) > 0 {
		r.Use(cors.New(corsConfig(o.corsOrigins)))
	}
	if o.requestTimeout > 0 {
		r.Use(middleware.Deadline(o.requestTimeout))
	}

	// 認証不要
	r.GET("/health", handler.Health)
	r.HEAD("/health", handler.Health)
	if o.metrics != nil {
		r.GET("/metrics", o.metrics.Handler())
	}
	r.POST("/auth/register", h.Auth.Register)
	r.POST("/auth/login", h.Auth.Login)

	// 認証必須のルート
	wl := r.Group("/watchlist")
	wl.Use(jwtmw.AuthRequired(h.Verifier))
	{
		wl.GET("", h.Watchlist.List)
		wl.GET("/platforms", h.Platforms.List)
		wl.POST("", h.Watchlist.Add)
		wl.PUT("/:id", h.Watchlist.Update)
		wl.DELETE("/:id", h.Watchlist.Delete)
	}

	r.NoRoute(middleware.NotFound)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
