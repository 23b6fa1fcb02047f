// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	platformentity "watchlist_backend/internal/feature/platforms/domain/entity"
	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
	"watchlist_backend/internal/platform/db"
	"watchlist_backend/internal/shared/optional"
)

// itemGorm はItemRepositoryインターフェースのGORM実装です。
// すべての読み書きは id と user_id の両方で絞り込みます。
type itemGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.ItemRepository = (*itemGorm)(nil)

// NewItemRepository は指定されたDB接続でitemGormリポジトリの新しいインスタンスを生成します。
func NewItemRepository(db *gorm.DB) *itemGorm {
	return &itemGorm{db: db, now: time.Now}
}

// withPlatform はプラットフォーム名をLEFT JOINしたクエリを返します。
func (r *itemGorm) withPlatform(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Select("watchlist_items.*, platforms.name AS platform_name").
		Joins("LEFT JOIN platforms ON platforms.id = watchlist_items.platform_id")
}

// List は作成日時の降順でユーザーのアイテムを返します。
func (r *itemGorm) List(ctx context.Context, userID uint, filter entity.ItemFilter) ([]entity.Item, error) {
	q := r.withPlatform(ctx).Where("watchlist_items.user_id = ?", userID)
	if filter.Status != nil {
		q = q.Where("watchlist_items.status = ?", *filter.Status)
	}
	if filter.ContentType != nil {
		q = q.Where("watchlist_items.content_type = ?", *filter.ContentType)
	}

	items := []entity.Item{}
	if err := q.
		Order("watchlist_items.created_at DESC").
		Order("watchlist_items.id DESC").
		Find(&items).Error; err != nil {
		return nil, db.Translate("list watchlist items", err)
	}
	return items, nil
}

// Create はアイテムを挿入し、採番されたIDを設定します。
// 参照先プラットフォームが存在しない場合は usecase.ErrPlatformNotFound を返します。
func (r *itemGorm) Create(ctx context.Context, item *entity.Item) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return usecase.ErrPlatformNotFound
		}
		return db.Translate("create watchlist item", err)
	}
	return nil
}

// FindByID はユーザーが所有するアイテムを1件取得します。
func (r *itemGorm) FindByID(ctx context.Context, userID, id uint) (*entity.Item, error) {
	var item entity.Item
	err := r.withPlatform(ctx).
		Where("watchlist_items.id = ? AND watchlist_items.user_id = ?", id, userID).
		Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrItemNotFound
		}
		return nil, db.Translate("find watchlist item", err)
	}
	return &item, nil
}

// Update は指定されたフィールドのみを更新し、updated_at を必ず更新します。
func (r *itemGorm) Update(ctx context.Context, userID, id uint, patch entity.ItemPatch) error {
	changes := patchColumns(patch)
	changes["updated_at"] = r.now()

	res := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(changes)
	if res.Error != nil {
		if db.IsForeignKeyViolation(res.Error) {
			return usecase.ErrPlatformNotFound
		}
		return db.Translate("update watchlist item", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrItemNotFound
	}
	return nil
}

// Delete はユーザーが所有するアイテムを削除します。
func (r *itemGorm) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Item{})
	if res.Error != nil {
		return db.Translate("delete watchlist item", res.Error)
	}
	if res.RowsAffected == 0 {
		return usecase.ErrItemNotFound
	}
	return nil
}

// PlatformExists はプラットフォームが存在するか確認します。
func (r *itemGorm) PlatformExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&platformentity.Platform{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		if db.IsUndefinedTable(err) {
			return false, nil
		}
		return false, db.Translate("check platform", err)
	}
	return count > 0, nil
}

// patchColumns は指定されたフィールドをカラム名のマップに変換します。
// null はカラムをクリアし、未指定のフィールドは含めません。
func patchColumns(p entity.ItemPatch) map[string]any {
	changes := map[string]any{}
	put(changes, "platform_id", p.PlatformID)
	put(changes, "title", p.Title)
	put(changes, "content_type", p.ContentType)
	put(changes, "status", p.Status)
	put(changes, "rating", p.Rating)
	put(changes, "notes", p.Notes)
	put(changes, "image_url", p.ImageURL)
	return changes
}

func put[T any](m map[string]any, column string, f optional.Field[T]) {
	if !f.Present() {
		return
	}
	if v, ok := f.Get(); ok {
		m[column] = v
		return
	}
	m[column] = nil
}
