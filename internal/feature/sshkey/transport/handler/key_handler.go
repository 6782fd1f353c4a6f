// Package handler はsshkeyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lucius_backend/internal/feature/sshkey/domain/entity"
	"lucius_backend/internal/feature/sshkey/transport/http/dto"
	"lucius_backend/internal/platform/http/params"
	"lucius_backend/internal/platform/http/respond"
	jwtmw "lucius_backend/internal/platform/jwt"
	"lucius_backend/internal/shared/apperr"
)

// KeyUsecase は呼び出し元ユーザーのSSH鍵操作です。
type KeyUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.SSHKey, error)
	Add(ctx context.Context, userID uint, title, key string) (*entity.SSHKey, error)
	Delete(ctx context.Context, userID uint, keyID int64) error
}

var errUnauthenticated = apperr.New(apperr.KindUnauthorized, "auth.missing_token", "missing bearer token")

type KeyHandler struct {
	uc KeyUsecase
}

func NewKeyHandler(uc KeyUsecase) *KeyHandler {
	return &KeyHandler{uc: uc}
}

// List は GET /user/keys を処理します。GitLabの一覧をそのまま返します。
func (h *KeyHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		respond.Error(c, errUnauthenticated)
		return
	}
	keys, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, keys)
}

// Add は POST /user/keys を処理します。
// GitLabが鍵を拒否した場合は、その検証メッセージを400の error としてそのまま返します。
func (h *KeyHandler) Add(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		respond.Error(c, errUnauthenticated)
		return
	}
	var req dto.AddKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	key, err := h.uc.Add(c.Request.Context(), userID, req.Title, req.Key)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, key)
}

// Delete は DELETE /user/keys/:id を処理します。
func (h *KeyHandler) Delete(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		respond.Error(c, errUnauthenticated)
		return
	}
	id, err := params.PathID(c, "id")
	if err != nil {
		respond.BindError(c, err)
		return
	}
	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
