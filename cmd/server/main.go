package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lucius_backend/internal/app/config"
	"lucius_backend/internal/app/di"
	"lucius_backend/internal/app/router"
	authadapters "lucius_backend/internal/feature/auth/adapters"
	authhandler "lucius_backend/internal/feature/auth/transport/handler"
	authusecase "lucius_backend/internal/feature/auth/usecase"
	casesadapters "lucius_backend/internal/feature/cases/adapters"
	caseshandler "lucius_backend/internal/feature/cases/transport/handler"
	casesusecase "lucius_backend/internal/feature/cases/usecase"
	sshkeyadapters "lucius_backend/internal/feature/sshkey/adapters"
	sshkeyhandler "lucius_backend/internal/feature/sshkey/transport/handler"
	sshkeyusecase "lucius_backend/internal/feature/sshkey/usecase"
	infradb "lucius_backend/internal/platform/db"
	"lucius_backend/internal/platform/http/handler"
	"lucius_backend/internal/platform/i18n"
	jwtmw "lucius_backend/internal/platform/jwt"
	"lucius_backend/internal/platform/logging"
	infraredis "lucius_backend/internal/platform/redis"
)

// sessionPurgeInterval は期限切れセッションを削除する間隔です。
const sessionPurgeInterval = time.Hour

func main() {
	// .env はローカル開発用。無ければ環境変数のみを使う
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	cfg := config.Load()
	logging.New(os.Stdout, cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := openDB(ctx, cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, infraredis.Config{
			Host: cfg.Redis.Host, Port: cfg.Redis.Port, Password: cfg.Redis.Password,
		}); err != nil {
			slog.Warn("redis unavailable, running without cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	// i18n
	tr, err := i18n.New(cfg.Language)
	if err != nil {
		slog.Error("failed to build translator", "error", err)
		os.Exit(1)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := tr.RegisterValidator(v); err != nil {
			slog.Error("failed to register validator translations", "error", err)
			os.Exit(1)
		}
	}

	// JWT_SECRETチェック
	if cfg.JWT.Secret == "" {
		slog.Warn("JWT_SECRET is not set; authenticated routes will fail")
	}
	if cfg.GitLab.AdminToken == "" {
		slog.Warn("GITLAB_ADMIN_TOKEN is not set; registration and ssh key calls will be rejected by gitlab")
	}

	// Repository / external clients
	gitlabClient := di.NewGitlabClient(cfg.GitLab)
	sessions := di.NewSessionRepository(rdb, db, cfg.Session.RedisKeyPrefix)
	caseRepo := di.NewCaseRepository(db, rdb, cfg.CaseTTL)

	// Usecase
	registrationUC := authusecase.NewRegistrationUsecase(
		authadapters.NewUnitOfWork(db),
		authadapters.NewGitlabIdentity(gitlabClient),
		cfg.GitLab.CompensateOnFailure,
	)
	authUC := authusecase.NewAuthUsecase(
		authadapters.NewIdentityStore(db),
		sessions,
		jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.AccessTTL),
		authusecase.SessionPolicy{RefreshTTL: cfg.Session.RefreshTTL, MaxPerUser: cfg.Session.MaxPerUser},
	)
	keyUC := sshkeyusecase.NewKeyUsecase(sshkeyadapters.NewAccountGorm(db), sshkeyadapters.NewGitlabKeys(gitlabClient))
	caseUC := casesusecase.NewCaseUsecase(caseRepo)

	// Handler
	checks := []handler.Check{{Name: "database", Ping: func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}}}
	if rdb != nil {
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Health: handler.NewHealthHandler(2*time.Second, checks...),
		Auth:   authhandler.NewAuthHandler(registrationUC, authUC),
		Keys:   sshkeyhandler.NewKeyHandler(keyUC),
		Cases:  caseshandler.NewCaseHandler(caseUC),
	}, router.Options{
		JWTSecret:          cfg.JWT.Secret,
		Translator:         tr,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	go purgeSessions(ctx, authUC)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

// openDB はドライバに応じてDBを開き、スキーマを準備します。
// postgres: 接続リトライ後、RUN_MIGRATIONS=true ならgooseでマイグレーション
// sqlite: AutoMigrateとロールのシード（ローカル開発用）
func openDB(ctx context.Context, cfg config.DBConfig) (*gorm.DB, error) {
	if cfg.Driver == "sqlite" {
		db, err := infradb.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := authadapters.AutoMigrate(db); err != nil {
			return nil, err
		}
		if err := authadapters.SeedRoles(db); err != nil {
			return nil, err
		}
		if err := casesadapters.AutoMigrate(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	dsn := infradb.BuildDSN(infradb.Config{
		User:         cfg.User,
		Password:     cfg.Password,
		Name:         cfg.Name,
		Host:         cfg.Host,
		Port:         cfg.Port,
		SSLMode:      cfg.SSLMode,
		InstanceName: cfg.InstanceName,
	})
	db, err := infradb.ConnectWithRetry(dsn, cfg.ConnTimeout, infradb.OpenPostgres)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := infradb.RunMigrations(ctx, db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// purgeSessions は期限切れセッションを定期的に削除します。
func purgeSessions(ctx context.Context, uc interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := uc.PurgeExpiredSessions(ctx)
			if err != nil {
				slog.Error("failed to purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("purged expired sessions", "count", n)
			}
		}
	}
}
