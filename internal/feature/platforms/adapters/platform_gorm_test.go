package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"watchlist_backend/internal/feature/platforms/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	if migrate {
		require.NoError(t, db.AutoMigrate(&entity.Platform{}), "failed to migrate table")
	}
	return db
}

// TestPlatformGorm_List は名前順に並んだ一覧が返ることを検証します。
func TestPlatformGorm_List(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t, true)
	require.NoError(t, db.Create(&[]entity.Platform{{Name: "Netflix"}, {Name: "Disney+"}, {Name: "Hulu"}}).Error)

	repo := NewPlatformRepository(db)
	got, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Disney+", "Hulu", "Netflix"}, []string{got[0].Name, got[1].Name, got[2].Name})
	for _, p := range got {
		assert.NotZero(t, p.ID)
	}
}

// TestPlatformGorm_List_Empty はデータがない場合に空スライスが返ることを検証します。
func TestPlatformGorm_List_Empty(t *testing.T) {
	t.Parallel()

	repo := NewPlatformRepository(setupTestDB(t, true))
	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// TestPlatformGorm_List_MissingTable はテーブルが存在しない場合に空リストが返ることを検証します。
func TestPlatformGorm_List_MissingTable(t *testing.T) {
	t.Parallel()

	repo := NewPlatformRepository(setupTestDB(t, false))
	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// TestPlatformGorm_InsertMissing は既存の名前がスキップされることを検証します。
func TestPlatformGorm_InsertMissing(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t, true)
	repo := NewPlatformRepository(db)
	ctx := context.Background()

	n, err := repo.InsertMissing(ctx, []string{"Netflix", "Hulu"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.InsertMissing(ctx, []string{"Netflix", "Max"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var count int64
	require.NoError(t, db.Model(&entity.Platform{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	n, err = repo.InsertMissing(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
