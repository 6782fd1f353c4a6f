package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lucius_backend/internal/feature/auth/domain/entity"
)

// refreshTokenBytes is the entropy of a refresh token (hex-encoded to 64 chars).
const refreshTokenBytes = 32

// dummyHash is compared when the user does not exist so that both paths cost one bcrypt run.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// SessionMeta はセッション作成時に記録するクライアント情報です。
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// TokenPair はログイン・リフレッシュの結果です。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// UserInfo は認証済みユーザー自身の情報です。
type UserInfo struct {
	Username string
	Email    string
	Roles    []string
}

// SessionPolicy はリフレッシュセッションの有効期限と同時保持数です。
type SessionPolicy struct {
	RefreshTTL time.Duration
	MaxPerUser int
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	store    IdentityStore
	sessions SessionRepository
	tokens   TokenGenerator
	policy   SessionPolicy
	now      func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(store IdentityStore, sessions SessionRepository, tokens TokenGenerator, policy SessionPolicy) *authUsecase {
	return &authUsecase{
		store:    store,
		sessions: sessions,
		tokens:   tokens,
		policy:   policy,
		now:      time.Now,
	}
}

// Login はユーザーを認証し、アクセストークンとリフレッシュトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string, meta SessionMeta) (*TokenPair, error) {
	user, err := u.store.Users().FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、同じエラーを返す
	if user == nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issue(ctx, user, meta)
}

// Refresh はリフレッシュトークンを検証し、古いセッションを失効させて新しいトークンの組を返します。
// 失効済みのトークンが再利用された場合、そのユーザーの全セッションを失効させます。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, meta SessionMeta) (*TokenPair, error) {
	if !validRefreshToken(refreshToken) {
		return nil, ErrInvalidRefreshToken
	}

	s, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if s.IsRevoked() {
		slog.Warn("revoked refresh token reused", "user_id", s.UserID)
		if err := u.sessions.RevokeAllByUserID(ctx, s.UserID); err != nil {
			slog.Error("failed to revoke sessions", "user_id", s.UserID, "error", err)
		}
		return nil, ErrInvalidRefreshToken
	}
	if s.IsExpiredAt(u.now()) {
		return nil, ErrInvalidRefreshToken
	}

	user, err := u.store.Users().FindByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if err := u.sessions.Revoke(ctx, s.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}
	return u.issue(ctx, user, meta)
}

// Logout はリフレッシュトークンのセッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if !validRefreshToken(refreshToken) {
		return ErrSessionNotFound
	}
	return u.sessions.Revoke(ctx, refreshToken)
}

// GetUserInfo returns the user's own username, email and role names.
func (u *authUsecase) GetUserInfo(ctx context.Context, userID uint) (*UserInfo, error) {
	user, err := u.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	roles, err := u.store.Roles().NamesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserInfo{Username: user.Username, Email: user.Email, Roles: roles}, nil
}

// PurgeExpiredSessions deletes expired sessions and returns how many were removed.
func (u *authUsecase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}

// issue はアクセストークンを生成し、新しいセッションを保存します。
// 同時保持数の上限に達している場合は最も古いセッションから削除します。
func (u *authUsecase) issue(ctx context.Context, user *entity.User, meta SessionMeta) (*TokenPair, error) {
	roles, err := u.store.Roles().NamesByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	access, err := u.tokens.GenerateToken(user.ID, user.Username, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if u.policy.MaxPerUser > 0 {
		count, err := u.sessions.CountByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		for ; count >= int64(u.policy.MaxPerUser); count-- {
			if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
				return nil, err
			}
		}
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	now := u.now()
	if err := u.sessions.Create(ctx, &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.policy.RefreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: u.tokens.TTL()}, nil
}

func newRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func validRefreshToken(s string) bool {
	if len(s) != refreshTokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
