package http

import (
	"net/http"
	"time"
)

// NewServer はAPI公開用に設定されたHTTPサーバーを作成します。
//
// 設定:
//   - ReadHeaderTimeout: ヘッダー読み取りの最大時間（Slowloris対策）
//   - ReadTimeout / WriteTimeout: リクエスト全体の読み書き上限
//   - IdleTimeout: Keep-Alive 接続の維持期間
//
// 注意:
//   - http.ListenAndServe のデフォルトサーバーにはタイムアウトがないため、常にこの関数を使用すること
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
