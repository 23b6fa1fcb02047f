package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"watchlist_backend/internal/app/di"
	"watchlist_backend/internal/app/router"
	authentity "watchlist_backend/internal/feature/auth/domain/entity"
	platformentity "watchlist_backend/internal/feature/platforms/domain/entity"
	watchlistentity "watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/platform/db"
	jwtmw "watchlist_backend/internal/platform/jwt"
	"watchlist_backend/internal/platform/metrics"
)

const testSecret = "router-test-secret"

// setupRouter はインメモリSQLiteに接続した本番と同じ構成のルーターを作成します。
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.NewOpener(db.DriverSQLite)(":memory:")
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(&authentity.User{}, &platformentity.Platform{}, &watchlistentity.Item{}))
	require.NoError(t, gdb.Create(&platformentity.Platform{Name: "Netflix"}).Error)

	h := di.NewHandlers(di.Deps{
		DB:         gdb,
		Tokens:     jwtmw.NewManager(testSecret, time.Hour),
		BcryptCost: bcrypt.MinCost,
	})
	return router.NewRouter(h,
		router.WithCORS([]string{"*"}),
		router.WithRequestTimeout(5*time.Second),
		router.WithMetrics(metrics.NewRegistry()),
	)
}

func doReq(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body["error"]
}

func register(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doReq(r, http.MethodPost, "/auth/register", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func addItem(t *testing.T, r *gin.Engine, token, body string) map[string]any {
	t.Helper()
	w := doReq(r, http.MethodPost, "/watchlist", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	return item
}

func listItems(t *testing.T, r *gin.Engine, token, query string) []map[string]any {
	t.Helper()
	w := doReq(r, http.MethodGet, "/watchlist"+query, token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	return items
}

func itemPath(item map[string]any) string {
	return "/watchlist/" + jsonNumber(item["id"])
}

func jsonNumber(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestRouter_Health(t *testing.T) {
	r := setupRouter(t)

	w := doReq(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = doReq(r, http.MethodHead, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	w := doReq(setupRouter(t), http.MethodGet, "/nope", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", errorOf(t, w))
}

func TestRouter_Metrics(t *testing.T) {
	r := setupRouter(t)
	doReq(r, http.MethodGet, "/health", "", "")

	w := doReq(r, http.MethodGet, "/metrics", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "watchlist_http_requests_total")
}

func TestRouter_AccessGate(t *testing.T) {
	r := setupRouter(t)

	w := doReq(r, http.MethodGet, "/watchlist", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing bearer token", errorOf(t, w))

	w = doReq(r, http.MethodGet, "/watchlist", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", errorOf(t, w))

	w = doReq(r, http.MethodGet, "/watchlist/platforms", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestRouter_TokenOfUnknownUser は署名が正しくても存在しないユーザーのトークンが拒否されることを検証します。
func TestRouter_TokenOfUnknownUser(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "alice@x.com", "secret1")

	forged, err := jwtmw.NewManager(testSecret, time.Hour).GenerateToken(999)
	require.NoError(t, err)

	w := doReq(r, http.MethodGet, "/watchlist", forged, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", errorOf(t, w))

	w = doReq(r, http.MethodPost, "/watchlist", forged, `{"title":"Dune","contentType":"movie"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AliceAndBob(t *testing.T) {
	r := setupRouter(t)

	tokenA := register(t, r, "alice@x.com", "secret1")
	item := addItem(t, r, tokenA, `{"title":"Dune","contentType":"movie"}`)
	assert.Equal(t, "want_to_watch", item["status"])
	assert.Nil(t, item["rating"])
	assert.Nil(t, item["notes"])

	items := listItems(t, r, tokenA, "")
	require.Len(t, items, 1)
	assert.Equal(t, item["id"], items[0]["id"])

	tokenB := register(t, r, "bob@y.com", "secret2")
	assert.Empty(t, listItems(t, r, tokenB, ""))

	// 他ユーザーの操作は存在しない場合と区別できない
	w := doReq(r, http.MethodPut, itemPath(item), tokenB, `{"title":"Hijacked"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", errorOf(t, w))

	w = doReq(r, http.MethodDelete, itemPath(item), tokenB, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", errorOf(t, w))

	w = doReq(r, http.MethodPut, "/watchlist/9999", tokenB, `{"title":"Hijacked"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", errorOf(t, w))

	items = listItems(t, r, tokenA, "")
	require.Len(t, items, 1)
	assert.Equal(t, "Dune", items[0]["title"])
}

func TestRouter_OwnerComesFromToken(t *testing.T) {
	r := setupRouter(t)
	tokenA := register(t, r, "alice@x.com", "secret1")
	tokenB := register(t, r, "bob@y.com", "secret2")

	addItem(t, r, tokenB, `{"title":"Dune","contentType":"movie","userId":1}`)

	assert.Empty(t, listItems(t, r, tokenA, ""))
	assert.Len(t, listItems(t, r, tokenB, ""), 1)
}

func TestRouter_AddValidation(t *testing.T) {
	r := setupRouter(t)
	token := register(t, r, "alice@x.com", "secret1")

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty title", `{"title":"","contentType":"movie"}`, "title is required"},
		{"missing content type", `{"title":"Dune"}`, "contentType is required"},
		{"unknown content type", `{"title":"Dune","contentType":"book"}`, "contentType must be one of: movie, tv"},
		{"unknown platform", `{"title":"Dune","contentType":"movie","platformId":99}`, "platform not found"},
		{"rating zero", `{"title":"Dune","contentType":"movie","rating":0}`, "rating must be an integer between 1 and 5"},
		{"rating six", `{"title":"Dune","contentType":"movie","rating":6}`, "rating must be an integer between 1 and 5"},
		{"rating negative", `{"title":"Dune","contentType":"movie","rating":-1}`, "rating must be an integer between 1 and 5"},
		{"rating fraction", `{"title":"Dune","contentType":"movie","rating":3.5}`, ""},
		{"rating string", `{"title":"Dune","contentType":"movie","rating":"five"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doReq(r, http.MethodPost, "/watchlist", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorOf(t, w))
			}
		})
	}

	assert.Empty(t, listItems(t, r, token, ""))
}

func TestRouter_AddEmptyStatusDefaults(t *testing.T) {
	r := setupRouter(t)
	token := register(t, r, "alice@x.com", "secret1")

	item := addItem(t, r, token, `{"title":"X","contentType":"movie","status":""}`)

	assert.Equal(t, "want_to_watch", item["status"])
}

func TestRouter_RatingBounds(t *testing.T) {
	r := setupRouter(t)
	token := register(t, r, "alice@x.com", "secret1")

	one := addItem(t, r, token, `{"title":"A","contentType":"movie","rating":1}`)
	five := addItem(t, r, token, `{"title":"B","contentType":"tv","rating":5,"platformId":1}`)

	assert.Equal(t, float64(1), one["rating"])
	assert.Equal(t, float64(5), five["rating"])
	assert.Equal(t, "Netflix", five["platformName"])
}

func TestRouter_UpdateAndDelete(t *testing.T) {
	r := setupRouter(t)
	token := register(t, r, "alice@x.com", "secret1")
	item := addItem(t, r, token, `{"title":"Dune","contentType":"movie","rating":3,"notes":"part one"}`)

	w := doReq(r, http.MethodPut, itemPath(item), token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no fields to update", errorOf(t, w))

	w = doReq(r, http.MethodPut, itemPath(item), token, `{"title":null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "title is required", errorOf(t, w))

	time.Sleep(10 * time.Millisecond)
	w = doReq(r, http.MethodPut, itemPath(item), token, `{"status":"watched"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "watched", updated["status"])
	assert.Equal(t, "Dune", updated["title"])
	assert.Equal(t, float64(3), updated["rating"])
	assert.Equal(t, "part one", updated["notes"])
	assert.NotEqual(t, item["updatedAt"], updated["updatedAt"])

	w = doReq(r, http.MethodPut, itemPath(item), token, `{"rating":null,"notes":""}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Nil(t, updated["rating"])
	assert.Nil(t, updated["notes"])

	assert.Len(t, listItems(t, r, token, "?status=watched"), 1)
	assert.Empty(t, listItems(t, r, token, "?status=want_to_watch"))
	assert.Len(t, listItems(t, r, token, "?contentType=movie"), 1)

	w = doReq(r, http.MethodGet, "/watchlist?status=dropped", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doReq(r, http.MethodDelete, itemPath(item), token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doReq(r, http.MethodDelete, itemPath(item), token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", errorOf(t, w))
}

func TestRouter_Platforms(t *testing.T) {
	r := setupRouter(t)
	token := register(t, r, "alice@x.com", "secret1")

	w := doReq(r, http.MethodGet, "/watchlist/platforms", token, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Netflix"}]`, w.Body.String())
}

func TestRouter_AuthFlows(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "alice@x.com", "secret1")

	// 大文字小文字違いの重複登録
	w := doReq(r, http.MethodPost, "/auth/register", "", `{"email":"ALICE@x.com","password":"other"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email already exists", errorOf(t, w))

	w = doReq(r, http.MethodPost, "/auth/register", "", `{"email":"","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email and password are required", errorOf(t, w))

	w = doReq(r, http.MethodPost, "/auth/login", "", `{"email":"Alice@X.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	wrongPassword := doReq(r, http.MethodPost, "/auth/login", "", `{"email":"alice@x.com","password":"nope"}`)
	unknownEmail := doReq(r, http.MethodPost, "/auth/login", "", `{"email":"ghost@x.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "invalid credentials", errorOf(t, unknownEmail))

	w = doReq(r, http.MethodPost, "/auth/login", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
