// Package http は外部API呼び出し用のHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API（GitLab）呼び出し用のHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: HTTP_PROXY などの環境変数に従う
//   - Dialer.Timeout: TCP接続タイムアウト
//   - MaxIdleConnsPerHost: 接続先は単一ホストのため、ホストあたりのアイドル接続を多めに確保
//   - ResponseHeaderTimeout: ヘッダー受信までの上限（timeoutを超えない）
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
//
// http.DefaultClient にはタイムアウトがないため使用しないこと。
func NewHTTPClient(timeout time.Duration) *http.Client {
	headerTimeout := 30 * time.Second
	if timeout > 0 && timeout < headerTimeout {
		headerTimeout = timeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: headerTimeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
