// Package entity はauthフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// User は登録済みのアカウントです。
// Email は小文字に正規化して保存し、一意制約で重複登録を防ぎます。
// 平文のパスワードは保持せず、bcryptハッシュのみを保存します。
type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string  `gorm:"column:password_hash;size:255;not null"`
	FullName     *string `gorm:"column:full_name;size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name.
func (User) TableName() string {
	return "users"
}
