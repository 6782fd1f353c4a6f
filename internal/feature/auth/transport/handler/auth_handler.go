// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lucius_backend/internal/feature/auth/transport/http/dto"
	"lucius_backend/internal/feature/auth/usecase"
	"lucius_backend/internal/platform/http/respond"
	jwtmw "lucius_backend/internal/platform/jwt"
	"lucius_backend/internal/shared/apperr"
)

var errUnauthenticated = apperr.New(apperr.KindUnauthorized, "auth.missing_token", "missing bearer token")

// Registrar はユーザー登録のユースケースです。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type Registrar interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
}

// Authenticator は認証とセッション操作のユースケースです。
type Authenticator interface {
	Login(ctx context.Context, username, password string, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserInfo(ctx context.Context, userID uint) (*usecase.UserInfo, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	registrar Registrar
	auth      Authenticator
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(registrar Registrar, auth Authenticator) *AuthHandler {
	return &AuthHandler{registrar: registrar, auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400
// - ユーザー名重複は409、未知のロールは404、GitLab呼び出し失敗は502
// - 成功時は201
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	out, err := h.registrar.Register(c.Request.Context(), usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Roles:    req.Roles,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterRes{ID: out.UserID, Username: out.Username, Roles: out.Roles})
}

// Login はユーザーログインAPIエンドポイントを処理します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	pair, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, sessionMeta(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, tokenRes(pair))
}

// Refresh はリフレッシュトークンを新しいトークンの組に交換します。
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, sessionMeta(c))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenRes(pair))
}

// Logout はリフレッシュトークンのセッションを失効させます。
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UserInfo は認証済みユーザー自身の情報を返します。
func (h *AuthHandler) UserInfo(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		respond.Error(c, errUnauthenticated)
		return
	}
	info, err := h.auth.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserInfoRes{Username: info.Username, Email: info.Email, Roles: info.Roles})
}

func sessionMeta(c *gin.Context) usecase.SessionMeta {
	return usecase.SessionMeta{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

func tokenRes(p *usecase.TokenPair) dto.TokenRes {
	return dto.TokenRes{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(p.ExpiresIn.Seconds()),
	}
}
