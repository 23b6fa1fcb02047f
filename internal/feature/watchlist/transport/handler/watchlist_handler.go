// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/transport/http/dto"
	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/http/httperr"
	jwtmw "watchlist_backend/internal/platform/jwt"
	"watchlist_backend/internal/shared/apperror"
)

var (
	errInvalidBody = apperror.Validation("invalid request body")
	errInvalidID   = apperror.Validation("invalid id")
	errNoIdentity  = apperror.Unauthorized("invalid token")
)

// WatchlistUsecase はウォッチリスト操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type WatchlistUsecase interface {
	List(ctx context.Context, userID uint, filter entity.ItemFilter) ([]entity.Item, error)
	Add(ctx context.Context, userID uint, in entity.NewItem) (*entity.Item, error)
	Update(ctx context.Context, userID, id uint, patch entity.ItemPatch) (*entity.Item, error)
	Delete(ctx context.Context, userID, id uint) error
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
// 所有者は常に認証済みのトークンから取得し、リクエストボディの値は使いません。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler はWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List は GET /watchlist を処理します。
// クエリ status と contentType で絞り込みます。空の値は無視します。
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		httperr.Respond(c, errNoIdentity)
		return
	}

	var filter entity.ItemFilter
	if v := c.Query("status"); v != "" {
		st := entity.Status(v)
		filter.Status = &st
	}
	if v := c.Query("contentType"); v != "" {
		ct := entity.ContentType(v)
		filter.ContentType = &ct
	}

	items, err := h.uc.List(c.Request.Context(), userID, filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemResList(items))
}

// Add は POST /watchlist を処理し、作成したアイテムを201で返します。
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		httperr.Respond(c, errNoIdentity)
		return
	}

	var req dto.AddItemReq
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	item, err := h.uc.Add(c.Request.Context(), userID, req.ToNewItem())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewItemRes(*item))
}

// Update は PUT /watchlist/:id を処理します。
// ボディに含まれたフィールドだけを変更し、更新後のアイテムを返します。
func (h *WatchlistHandler) Update(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		httperr.Respond(c, errNoIdentity)
		return
	}
	id, err := parseID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req dto.UpdateItemReq
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	item, err := h.uc.Update(c.Request.Context(), userID, id, req.ToPatch())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemRes(*item))
}

// Delete は DELETE /watchlist/:id を処理し、成功時は本文なしの204を返します。
func (h *WatchlistHandler) Delete(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		httperr.Respond(c, errNoIdentity)
		return
	}
	id, err := parseID(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID は :id パスパラメータを正の整数として解釈します。
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// bindJSON はボディをデコードします。空のボディは空オブジェクトとして扱います。
// rating に整数以外が渡された場合は評価値のエラーを返します。
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field == "rating" {
		return usecase.ErrInvalidRating
	}
	return errInvalidBody
}
