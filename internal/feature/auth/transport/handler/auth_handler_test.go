package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lucius_backend/internal/api"
	"lucius_backend/internal/feature/auth/transport/http/dto"
	"lucius_backend/internal/feature/auth/usecase"
	jwtmw "lucius_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockRegistrar はRegistrarのモック実装です。
type mockRegistrar struct {
	RegisterFunc func(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
}

func (m *mockRegistrar) Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return m.RegisterFunc(ctx, in)
}

// mockAuthenticator はAuthenticatorのモック実装です。
type mockAuthenticator struct {
	LoginFunc       func(ctx context.Context, username, password string, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	RefreshFunc     func(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.TokenPair, error)
	LogoutFunc      func(ctx context.Context, refreshToken string) error
	GetUserInfoFunc func(ctx context.Context, userID uint) (*usecase.UserInfo, error)
}

func (m *mockAuthenticator) Login(ctx context.Context, username, password string, meta usecase.SessionMeta) (*usecase.TokenPair, error) {
	return m.LoginFunc(ctx, username, password, meta)
}

func (m *mockAuthenticator) Refresh(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.TokenPair, error) {
	return m.RefreshFunc(ctx, refreshToken, meta)
}

func (m *mockAuthenticator) Logout(ctx context.Context, refreshToken string) error {
	return m.LogoutFunc(ctx, refreshToken)
}

func (m *mockAuthenticator) GetUserInfo(ctx context.Context, userID uint) (*usecase.UserInfo, error) {
	return m.GetUserInfoFunc(ctx, userID)
}

func setupRouter(reg Registrar, auth Authenticator, userID uint) *gin.Engine {
	h := NewAuthHandler(reg, auth)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.POST("/auth/logout", h.Logout)
	r.GET("/user/info", func(c *gin.Context) {
		if userID != 0 {
			c.Set(jwtmw.ContextUserID, userID)
		}
		c.Next()
	}, h.UserInfo)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "handler-test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	valid := map[string]any{
		"username": "alice",
		"password": "password123",
		"email":    "alice@example.com",
		"roles":    []string{"mentor"},
	}

	tests := []struct {
		name       string
		body       map[string]any
		err        error
		wantStatus int
		wantCode   string
		wantCalled bool
	}{
		{name: "success", body: valid, wantStatus: http.StatusCreated, wantCalled: true},
		{name: "username exists", body: valid, err: usecase.ErrUserAlreadyExists, wantStatus: http.StatusConflict, wantCode: "conflict", wantCalled: true},
		{name: "unknown role", body: valid, err: usecase.ErrRoleNotFound, wantStatus: http.StatusNotFound, wantCode: "not_found", wantCalled: true},
		{name: "remote failed", body: valid, err: usecase.ErrRemoteCallFailed, wantStatus: http.StatusBadGateway, wantCode: "remote_call_failed", wantCalled: true},
		{name: "unexpected", body: valid, err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantCode: "unexpected", wantCalled: true},
		{
			name:       "missing email",
			body:       map[string]any{"username": "alice", "password": "password123"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
		{
			name:       "short password",
			body:       map[string]any{"username": "alice", "password": "short", "email": "alice@example.com"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
		{
			name:       "invalid email",
			body:       map[string]any{"username": "alice", "password": "password123", "email": "not-an-email"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
		{
			name:       "blank role name",
			body:       map[string]any{"username": "alice", "password": "password123", "email": "alice@example.com", "roles": []string{""}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			reg := &mockRegistrar{
				RegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error) {
					called = true
					assert.Equal(t, "alice", in.Username)
					assert.Equal(t, "password123", in.Password)
					if tt.err != nil {
						return nil, tt.err
					}
					return &usecase.RegisterOutput{UserID: 1, Username: in.Username, Roles: in.Roles, GitlabID: 501}, nil
				},
			}

			w := doJSON(setupRouter(reg, &mockAuthenticator{}, 0), http.MethodPost, "/auth/register", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantStatus == http.StatusCreated {
				var res dto.RegisterRes
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
				assert.Equal(t, dto.RegisterRes{ID: 1, Username: "alice", Roles: []string{"mentor"}}, res)
				return
			}
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestAuthHandler_Register_HidesInternalError(t *testing.T) {
	t.Parallel()

	reg := &mockRegistrar{
		RegisterFunc: func(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error) {
			return nil, errors.New("pq: connection refused")
		},
	}
	w := doJSON(setupRouter(reg, &mockAuthenticator{}, 0), http.MethodPost, "/auth/register", map[string]any{
		"username": "alice", "password": "password123", "email": "alice@example.com",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w).Error)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		auth := &mockAuthenticator{
			LoginFunc: func(ctx context.Context, username, password string, meta usecase.SessionMeta) (*usecase.TokenPair, error) {
				assert.Equal(t, "alice", username)
				assert.Equal(t, "password123", password)
				assert.Equal(t, "handler-test", meta.UserAgent)
				return &usecase.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 15 * time.Minute}, nil
			},
		}
		w := doJSON(setupRouter(&mockRegistrar{}, auth, 0), http.MethodPost, "/auth/login", dto.LoginReq{Username: "alice", Password: "password123"})

		require.Equal(t, http.StatusOK, w.Code)
		var res dto.TokenRes
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, dto.TokenRes{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, res)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()

		auth := &mockAuthenticator{
			LoginFunc: func(ctx context.Context, username, password string, meta usecase.SessionMeta) (*usecase.TokenPair, error) {
				return nil, usecase.ErrInvalidCredentials
			},
		}
		w := doJSON(setupRouter(&mockRegistrar{}, auth, 0), http.MethodPost, "/auth/login", dto.LoginReq{Username: "alice", Password: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", decodeError(t, w).Code)
	})

	t.Run("missing password", func(t *testing.T) {
		t.Parallel()

		w := doJSON(setupRouter(&mockRegistrar{}, &mockAuthenticator{}, 0), http.MethodPost, "/auth/login", map[string]string{"username": "alice"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Details, "Password")
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Parallel()

	auth := &mockAuthenticator{
		RefreshFunc: func(ctx context.Context, refreshToken string, meta usecase.SessionMeta) (*usecase.TokenPair, error) {
			if refreshToken != "good" {
				return nil, usecase.ErrInvalidRefreshToken
			}
			return &usecase.TokenPair{AccessToken: "a2", RefreshToken: "r2", ExpiresIn: time.Hour}, nil
		},
	}
	r := setupRouter(&mockRegistrar{}, auth, 0)

	w := doJSON(r, http.MethodPost, "/auth/refresh", dto.RefreshReq{RefreshToken: "good"})
	require.Equal(t, http.StatusOK, w.Code)
	var res dto.TokenRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "r2", res.RefreshToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	w = doJSON(r, http.MethodPost, "/auth/refresh", dto.RefreshReq{RefreshToken: "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/refresh", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Parallel()

	var got string
	auth := &mockAuthenticator{
		LogoutFunc: func(ctx context.Context, refreshToken string) error {
			got = refreshToken
			if refreshToken == "gone" {
				return usecase.ErrSessionNotFound
			}
			return nil
		},
	}
	r := setupRouter(&mockRegistrar{}, auth, 0)

	w := doJSON(r, http.MethodPost, "/auth/logout", dto.RefreshReq{RefreshToken: "tok"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "tok", got)

	w = doJSON(r, http.MethodPost, "/auth/logout", dto.RefreshReq{RefreshToken: "gone"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthHandler_UserInfo(t *testing.T) {
	t.Parallel()

	auth := &mockAuthenticator{
		GetUserInfoFunc: func(ctx context.Context, userID uint) (*usecase.UserInfo, error) {
			if userID != 7 {
				return nil, usecase.ErrUserNotFound
			}
			return &usecase.UserInfo{Username: "alice", Email: "alice@example.com", Roles: []string{"student"}}, nil
		},
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		w := doJSON(setupRouter(&mockRegistrar{}, auth, 7), http.MethodGet, "/user/info", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var res dto.UserInfoRes
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, dto.UserInfoRes{Username: "alice", Email: "alice@example.com", Roles: []string{"student"}}, res)
	})

	t.Run("deleted user", func(t *testing.T) {
		t.Parallel()

		w := doJSON(setupRouter(&mockRegistrar{}, auth, 8), http.MethodGet, "/user/info", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("no user in context", func(t *testing.T) {
		t.Parallel()

		w := doJSON(setupRouter(&mockRegistrar{}, auth, 0), http.MethodGet, "/user/info", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
