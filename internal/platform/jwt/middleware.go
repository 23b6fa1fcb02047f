// Package jwtmw issues access tokens and guards routes that require them.
package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/api"
	"watchlist_backend/internal/platform/http/httperr"
	"watchlist_backend/internal/shared/apperror"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

const bearerPrefix = "Bearer "

// TokenVerifier resolves a bearer token to a user id.
// The authentication service implements it; the gate never parses tokens itself.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (uint, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization ヘッダーから Bearer トークンを取り出す
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}

		// 2. 認証サービスで検証（署名・有効期限・ユーザーの存在）
		userID, err := verifier.VerifyToken(c.Request.Context(), tokenStr)
		if err != nil {
			if errors.Is(err, apperror.ErrUnauthorized) || errors.Is(err, ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
				return
			}
			// ストア障害などは認証失敗ではなく500として扱う
			httperr.Respond(c, err)
			return
		}

		// 3. 後続ハンドラー向けにユーザーIDを設定
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserIDFrom returns the user id stored by AuthRequired.
func UserIDFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
