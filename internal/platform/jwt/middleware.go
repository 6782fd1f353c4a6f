package jwtmw

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lucius_backend/internal/platform/http/respond"
	"lucius_backend/internal/shared/apperr"
)

const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRoles    = "roles"
)

var (
	errMissingToken = apperr.New(apperr.KindUnauthorized, "auth.missing_token", "missing bearer token")
	errInvalidToken = apperr.New(apperr.KindUnauthorized, "auth.invalid_token", "invalid token")
	errForbidden    = apperr.New(apperr.KindForbidden, "auth.forbidden", "insufficient role")
	errNoSecret     = apperr.New(apperr.KindUnexpected, "internal", "server misconfigured")
)

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorizationヘッダーからトークンを取り出す
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			respond.Error(c, errMissingToken)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			respond.Error(c, errNoSecret)
			return
		}

		// 2. 署名と有効期限を検証
		claims, err := ParseToken(tokenStr, secret)
		if err != nil {
			respond.Error(c, apperr.Wrap(apperr.KindUnauthorized, errInvalidToken.Key, err))
			return
		}
		userID, err := strconv.ParseUint(claims.Subject, 10, 0)
		if err != nil || userID == 0 {
			respond.Error(c, errInvalidToken)
			return
		}

		// 3. クレームをコンテキストへ
		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRoles, claims.Roles)
		c.Next()
	}
}

// RequireAnyRole は認証済みユーザーが roles のいずれかを持つ場合のみ通過させます。
// AuthRequired の後に置く必要があります。
func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasAnyRole(c, roles...) {
			respond.Error(c, errForbidden)
			return
		}
		c.Next()
	}
}

// UserID はコンテキストの認証済みユーザーIDを返します。
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// Roles はコンテキストのロール名を返します。
func Roles(c *gin.Context) []string {
	v, ok := c.Get(ContextRoles)
	if !ok {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}

// HasAnyRole reports whether the authenticated caller holds one of roles.
func HasAnyRole(c *gin.Context, roles ...string) bool {
	for _, have := range Roles(c) {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
