// Package logging はslogロガーの初期化を提供します。
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel はLOG_LEVELの文字列をslog.Levelに変換します。未知の値はInfoとして扱います。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New はJSON形式のslog.Loggerを生成し、デフォルトロガーとして設定します。
func New(w io.Writer, level string) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
	slog.SetDefault(logger)
	return logger
}
