package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestHealth はメソッドごとのステータスと本文を検証します。
// どのメソッドでもキャッシュさせないヘッダーが付きます。
func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Match([]string{http.MethodGet, http.MethodHead}, "/health", Health)

	tests := []struct {
		name       string
		method     string
		wantStatus int
		wantBody   string
	}{
		{"GET returns ok flag", http.MethodGet, http.StatusOK, `{"ok":true}`},
		{"HEAD has no body", http.MethodHead, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.wantBody == "" {
				assert.Zero(t, w.Body.Len())
				return
			}
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

// TestHealth_Unregistered は未登録メソッドがハンドラーに届かないことを確認します。
func TestHealth_Unregistered(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health", Health)

	for _, method := range []string{http.MethodPost, http.MethodOptions} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/health", nil))

		assert.Equal(t, http.StatusNotFound, w.Code, method)
		assert.Empty(t, w.Header().Get("Cache-Control"), method)
	}
}
