// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"watchlist_backend/internal/feature/auth/domain/entity"
)

// dummyPassword からユーザー未登録時の比較用ハッシュを生成します。
const dummyPassword = "watchlist-dummy-password"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// トークン検証時に、署名済みトークンのユーザーがまだ存在するか確認するために使います。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenManager はアクセストークンの発行と検証のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenManager interface {
	// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
	GenerateToken(userID uint) (string, error)
	// VerifyToken は署名と有効期限を検証し、ユーザーIDを返します。
	VerifyToken(token string) (uint, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users      UserRepository
	tokens     TokenManager
	bcryptCost int
	// dummyHash は未登録メールの照合に使うハッシュで、bcryptCost で生成します。
	dummyHash []byte
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// bcryptCost が範囲外の場合は bcrypt.DefaultCost を使用します。
func NewAuthUsecase(users UserRepository, tokens TokenManager, bcryptCost int) *authUsecase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	// コストは上で範囲内に収めているため、生成は失敗しません。
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte(dummyPassword), bcryptCost)
	return &authUsecase{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummyHash,
	}
}

// normalizeEmail はメールアドレスを比較・保存用に正規化します。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを返します。
// メールアドレスの重複はストアの一意制約で検出します（事前の存在チェックは行いません）。
func (u *authUsecase) Register(ctx context.Context, email, password, fullName string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrCredentialsRequired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: email, PasswordHash: string(hashed)}
	if name := strings.TrimSpace(fullName); name != "" {
		user.FullName = &name
	}
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}

	return u.IssueToken(user.ID)
}

// Login はユーザーを認証し、成功時にトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrCredentialsRequired
	}

	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	passwordHash := u.dummyHash
	if err == nil {
		passwordHash = []byte(user.PasswordHash)
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword(passwordHash, []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、同一のエラーを返す
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	return u.IssueToken(user.ID)
}

// IssueToken は指定されたユーザーIDのトークンを発行します。
func (u *authUsecase) IssueToken(userID uint) (string, error) {
	token, err := u.tokens.GenerateToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// VerifyToken はトークンを検証し、埋め込まれたユーザーIDを返します。
// 署名が正しくても、ユーザーが既に存在しない場合は ErrInvalidToken を返します。
func (u *authUsecase) VerifyToken(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}
	userID, err := u.tokens.VerifyToken(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, ErrInvalidToken
		}
		return 0, err
	}
	return user.ID, nil
}
