// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check は依存先の疎通確認です。Ping がエラーを返すと degraded になります。
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler は /healthz エンドポイントを処理します。
type HealthHandler struct {
	checks  []Check
	timeout time.Duration
}

// NewHealthHandler は checks を順に実行するヘルスハンドラーを生成します。
func NewHealthHandler(timeout time.Duration, checks ...Check) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{checks: checks, timeout: timeout}
}

// Health はHTTPメソッドに応じてレスポンスし、キャッシュを防止します。
// GETでは依存先の状態を返し、いずれかが失敗していれば503です。
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	case http.MethodHead:
		c.Status(h.status(c.Request.Context(), nil))
		return
	}

	results := make(map[string]string, len(h.checks))
	status := h.status(c.Request.Context(), results)
	body := gin.H{"status": "ok"}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if len(results) > 0 {
		body["checks"] = results
	}
	c.JSON(status, body)
}

func (h *HealthHandler) status(ctx context.Context, results map[string]string) int {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	status := http.StatusOK
	for _, chk := range h.checks {
		state := "ok"
		if err := chk.Ping(ctx); err != nil {
			state = err.Error()
			status = http.StatusServiceUnavailable
		}
		if results != nil {
			results[chk.Name] = state
		}
	}
	return status
}
