// Package respond はドメインエラーをHTTPレスポンスに変換します。
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"lucius_backend/internal/api"
	"lucius_backend/internal/platform/i18n"
	"lucius_backend/internal/shared/apperr"
)

// StatusFor はエラー種別に対応するHTTPステータスを返します。
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidationRejected, apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindRemoteCallFailed:
		return http.StatusBadGateway
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error はerrの種別に応じたステータスと、呼び出し元のロケールで翻訳したメッセージを返します。
// 5xxの場合は内部エラーの詳細を公開しません。
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)
	trans := i18n.FromContext(c)

	var msg string
	switch {
	case kind == apperr.KindValidationRejected:
		// リモート側の検証メッセージはそのまま返す
		var e *apperr.Error
		errors.As(err, &e)
		msg = e.Message
	case status >= http.StatusInternalServerError && kind == apperr.KindUnexpected:
		msg = i18n.Message(trans, i18n.KeyInternal, "internal server error")
	default:
		msg = i18n.Message(trans, apperr.KeyOf(err), err.Error())
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "kind", kind.String(), "path", c.FullPath())
	} else {
		slog.Warn("request rejected", "error", err, "kind", kind.String(), "path", c.FullPath())
	}
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg, Code: kind.String()})
}

// BindError はリクエストのバインド・検証エラーを400として返します。
// validatorのエラーはフィールドごとに翻訳して details に格納します。
func BindError(c *gin.Context, err error) {
	trans := i18n.FromContext(c)
	body := api.ErrorResponse{
		Error: i18n.Message(trans, i18n.KeyInvalidRequest, "invalid request"),
		Code:  apperr.KindInvalidInput.String(),
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body.Details = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			if trans != nil {
				body.Details[field] = fe.Translate(trans)
			} else {
				body.Details[field] = fe.Error()
			}
		}
	}

	slog.Warn("request validation failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

