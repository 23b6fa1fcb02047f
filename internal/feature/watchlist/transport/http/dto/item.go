// Package dto はwatchlistフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/shared/optional"
)

// AddItemReq は POST /watchlist のリクエストボディを表します。
// 省略可能なフィールドはポインタで受け取り、検証はユースケース側で行います。
type AddItemReq struct {
	PlatformID  *uint              `json:"platformId"`
	Title       string             `json:"title"`
	ContentType entity.ContentType `json:"contentType"`
	Status      *entity.Status     `json:"status"`
	Rating      *int               `json:"rating"`
	Notes       *string            `json:"notes"`
	ImageURL    *string            `json:"imageUrl"`
}

// ToNewItem converts the request into the usecase input.
func (r AddItemReq) ToNewItem() entity.NewItem {
	return entity.NewItem{
		PlatformID:  r.PlatformID,
		Title:       r.Title,
		ContentType: r.ContentType,
		Status:      r.Status,
		Rating:      r.Rating,
		Notes:       r.Notes,
		ImageURL:    r.ImageURL,
	}
}

// UpdateItemReq は PUT /watchlist/:id のリクエストボディを表します。
// キーの省略と明示的な null を区別するため optional.Field を使います。
type UpdateItemReq struct {
	PlatformID  optional.Field[uint]               `json:"platformId"`
	Title       optional.Field[string]             `json:"title"`
	ContentType optional.Field[entity.ContentType] `json:"contentType"`
	Status      optional.Field[entity.Status]      `json:"status"`
	Rating      optional.Field[int]                `json:"rating"`
	Notes       optional.Field[string]             `json:"notes"`
	ImageURL    optional.Field[string]             `json:"imageUrl"`
}

// ToPatch converts the request into a partial update.
func (r UpdateItemReq) ToPatch() entity.ItemPatch {
	return entity.ItemPatch{
		PlatformID:  r.PlatformID,
		Title:       r.Title,
		ContentType: r.ContentType,
		Status:      r.Status,
		Rating:      r.Rating,
		Notes:       r.Notes,
		ImageURL:    r.ImageURL,
	}
}

// ItemRes はレスポンスで返すウォッチリストアイテムの形です。
// 値のない任意フィールドは null として出力します。
type ItemRes struct {
	ID           uint               `json:"id"`
	PlatformID   *uint              `json:"platformId"`
	PlatformName *string            `json:"platformName"`
	Title        string             `json:"title"`
	ContentType  entity.ContentType `json:"contentType"`
	Status       entity.Status      `json:"status"`
	Rating       *int               `json:"rating"`
	Notes        *string            `json:"notes"`
	ImageURL     *string            `json:"imageUrl"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// NewItemRes maps an entity to its response shape.
func NewItemRes(it entity.Item) ItemRes {
	return ItemRes{
		ID:           it.ID,
		PlatformID:   it.PlatformID,
		PlatformName: it.PlatformName,
		Title:        it.Title,
		ContentType:  it.ContentType,
		Status:       it.Status,
		Rating:       it.Rating,
		Notes:        it.Notes,
		ImageURL:     it.ImageURL,
		CreatedAt:    it.CreatedAt.UTC(),
		UpdatedAt:    it.UpdatedAt.UTC(),
	}
}

// NewItemResList maps a slice of entities, never returning nil.
func NewItemResList(items []entity.Item) []ItemRes {
	out := make([]ItemRes, 0, len(items))
	for _, it := range items {
		out = append(out, NewItemRes(it))
	}
	return out
}
