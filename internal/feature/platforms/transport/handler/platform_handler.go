package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/feature/platforms/domain/entity"
	"watchlist_backend/internal/feature/platforms/transport/http/dto"
	"watchlist_backend/internal/platform/http/httperr"
)

// PlatformUsecase はプラットフォーム参照に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PlatformUsecase interface {
	ListPlatforms(ctx context.Context) ([]entity.Platform, error)
}

// PlatformHandler はプラットフォームに関するHTTPリクエストを処理します。
type PlatformHandler struct {
	uc PlatformUsecase
}

// NewPlatformHandler は新しい PlatformHandler を作成します。
func NewPlatformHandler(uc PlatformUsecase) *PlatformHandler {
	return &PlatformHandler{uc: uc}
}

// List はプラットフォームの一覧を取得するAPIです。
// Usecaseでエラーが発生した場合は内部情報を含まない500を返します。
func (h *PlatformHandler) List(c *gin.Context) {
	platforms, err := h.uc.ListPlatforms(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	out := make([]dto.PlatformItem, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, dto.PlatformItem{ID: p.ID, Name: p.Name})
	}
	c.JSON(http.StatusOK, out)
}
