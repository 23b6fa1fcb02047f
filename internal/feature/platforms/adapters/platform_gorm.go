// Package adapters はplatformsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"watchlist_backend/internal/feature/platforms/domain/entity"
	"watchlist_backend/internal/feature/platforms/usecase"
	"watchlist_backend/internal/platform/db"
)

// platformGorm はPlatformRepositoryインターフェースのGORM実装です。
type platformGorm struct {
	db *gorm.DB
}

var _ usecase.PlatformRepository = (*platformGorm)(nil)

// NewPlatformRepository は指定されたDB接続でplatformGormリポジトリの新しいインスタンスを生成します。
func NewPlatformRepository(db *gorm.DB) *platformGorm {
	return &platformGorm{db: db}
}

// List は名前順にすべてのプラットフォームを返します。
// テーブルが存在しない場合は空のリストを返します。
func (r *platformGorm) List(ctx context.Context) ([]entity.Platform, error) {
	platforms := []entity.Platform{}
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Order("name ASC").
		Find(&platforms).Error
	if err != nil {
		if db.IsUndefinedTable(err) {
			slog.WarnContext(ctx, "platforms table missing, returning empty list")
			return []entity.Platform{}, nil
		}
		return nil, db.Translate("list platforms", err)
	}
	return platforms, nil
}

// InsertMissing は未登録の名前だけを挿入し、追加件数を返します。
func (r *platformGorm) InsertMissing(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	rows := make([]entity.Platform, 0, len(names))
	for _, n := range names {
		rows = append(rows, entity.Platform{Name: n})
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		return 0, db.Translate("insert platforms", res.Error)
	}
	return res.RowsAffected, nil
}
