// migrate はPostgreSQLにスキーマを適用し、期限切れセッションを削除する一回実行のバッチです。
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"lucius_backend/internal/app/config"
	authadapters "lucius_backend/internal/feature/auth/adapters"
	infradb "lucius_backend/internal/platform/db"
	"lucius_backend/internal/platform/logging"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	cfg := config.Load()
	logging.New(os.Stdout, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	dsn := infradb.BuildDSN(infradb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Name:         cfg.DB.Name,
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		SSLMode:      cfg.DB.SSLMode,
		InstanceName: cfg.DB.InstanceName,
	})
	db, err := infradb.ConnectWithRetry(dsn, cfg.DB.ConnTimeout, infradb.OpenPostgres)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	if err := infradb.RunMigrations(ctx, db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")

	n, err := authadapters.NewSessionGorm(db).DeleteExpired(ctx)
	if err != nil {
		slog.Error("failed to purge expired sessions", "error", err)
		os.Exit(1)
	}
	slog.Info("expired sessions purged", "count", n)
}
