// Package router はHTTPルーティングを構築します。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "lucius_backend/internal/feature/auth/transport/handler"
	caseshandler "lucius_backend/internal/feature/cases/transport/handler"
	sshkeyhandler "lucius_backend/internal/feature/sshkey/transport/handler"
	"lucius_backend/internal/platform/http/handler"
	"lucius_backend/internal/platform/http/middleware"
	"lucius_backend/internal/platform/i18n"
	jwtmw "lucius_backend/internal/platform/jwt"
)

// Handlers はルーターに登録する各フィーチャーのハンドラーです。
type Handlers struct {
	Health *handler.HealthHandler
	Auth   *authhandler.AuthHandler
	Keys   *sshkeyhandler.KeyHandler
	Cases  *caseshandler.CaseHandler
}

// Options はルーター全体に関わる設定です。
type Options struct {
	JWTSecret          string
	Translator         *i18n.Translator
	CORSAllowedOrigins []string
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if opts.Translator != nil {
		r.Use(opts.Translator.Middleware())
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	auth := r.Group("/auth")
	{
		// 新規ユーザー登録（GitLabアカウントも作成）
		auth.POST("/register", h.Auth.Register)
		// ログイン（JWT 発行）
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
	}

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		authed.GET("/user/info", h.Auth.UserInfo)

		authed.GET("/user/keys", h.Keys.List)
		authed.POST("/user/keys", h.Keys.Add)
		authed.DELETE("/user/keys/:id", h.Keys.Delete)

		authed.GET("/cases", h.Cases.List)
		authed.GET("/cases/:id", h.Cases.Get)

		// 作成・更新・削除はメンターと管理者のみ
		authoring := authed.Group("/cases", jwtmw.RequireAnyRole("mentor", "admin"))
		authoring.POST("", h.Cases.Create)
		authoring.PUT("/:id", h.Cases.Update)
		authoring.DELETE("/:id", h.Cases.Delete)
	}

	return r
}
