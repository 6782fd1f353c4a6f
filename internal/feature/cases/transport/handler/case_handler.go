// Package handler はcasesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lucius_backend/internal/feature/cases/domain/entity"
	"lucius_backend/internal/feature/cases/transport/http/dto"
	"lucius_backend/internal/feature/cases/usecase"
	"lucius_backend/internal/platform/http/params"
	"lucius_backend/internal/platform/http/respond"
	jwtmw "lucius_backend/internal/platform/jwt"
	"lucius_backend/internal/shared/apperr"
)

// CaseUsecase はケースのCRUD操作です。
type CaseUsecase interface {
	Create(ctx context.Context, actor usecase.Actor, in usecase.CaseInput) (*entity.Case, error)
	Get(ctx context.Context, id uint) (*entity.Case, error)
	List(ctx context.Context, page, size int) (*usecase.Page, error)
	Update(ctx context.Context, actor usecase.Actor, id uint, in usecase.CaseInput) (*entity.Case, error)
	Delete(ctx context.Context, actor usecase.Actor, id uint) error
}

var errUnauthenticated = apperr.New(apperr.KindUnauthorized, "auth.missing_token", "missing bearer token")

// CaseHandler はケースAPIのHTTPリクエストを処理します。
type CaseHandler struct {
	uc CaseUsecase
}

func NewCaseHandler(uc CaseUsecase) *CaseHandler {
	return &CaseHandler{uc: uc}
}

// Create は POST /cases を処理します。
func (h *CaseHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		respond.Error(c, errUnauthenticated)
		return
	}
	var req dto.CaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	created, err := h.uc.Create(c.Request.Context(), actor, toInput(req))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get は GET /cases/:id を処理します。
func (h *CaseHandler) Get(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		respond.BindError(c, err)
		return
	}
	found, err := h.uc.Get(c.Request.Context(), uint(id))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// List は GET /cases?page=&size= を処理します。
func (h *CaseHandler) List(c *gin.Context) {
	page, err := params.QueryInt(c, "page", 1)
	if err != nil {
		respond.BindError(c, err)
		return
	}
	size, err := params.QueryInt(c, "size", usecase.DefaultPageSize)
	if err != nil {
		respond.BindError(c, err)
		return
	}
	p, err := h.uc.List(c.Request.Context(), page, size)
	if err != nil {
		respond.Error(c, err)
		return
	}
	items := p.Items
	if items == nil {
		items = []entity.Case{}
	}
	c.JSON(http.StatusOK, dto.CaseListRes{Items: items, Total: p.Total, Page: p.Page, Size: p.Size})
}

// Update は PUT /cases/:id を処理します。作成者または管理者のみ。
func (h *CaseHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		respond.Error(c, errUnauthenticated)
		return
	}
	id, err := params.PathID(c, "id")
	if err != nil {
		respond.BindError(c, err)
		return
	}
	var req dto.CaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	updated, err := h.uc.Update(c.Request.Context(), actor, uint(id), toInput(req))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete は DELETE /cases/:id を処理します。
func (h *CaseHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		respond.Error(c, errUnauthenticated)
		return
	}
	id, err := params.PathID(c, "id")
	if err != nil {
		respond.BindError(c, err)
		return
	}
	if err := h.uc.Delete(c.Request.Context(), actor, uint(id)); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func actorFrom(c *gin.Context) (usecase.Actor, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		return usecase.Actor{}, false
	}
	return usecase.Actor{UserID: id, Roles: jwtmw.Roles(c)}, true
}

func toInput(req dto.CaseReq) usecase.CaseInput {
	return usecase.CaseInput{
		Title:      req.Title,
		BriefIntro: req.BriefIntro,
		Content:    req.Content,
		DemoURL:    req.DemoURL,
	}
}
