package usecase

import (
	"context"
	"time"

	"lucius_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。
	// ユーザー名が重複する場合は ErrUserAlreadyExists を返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername はユーザー名でユーザーを取得します。存在しない場合は ErrUserNotFound を返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID はIDでユーザーを取得します。存在しない場合は ErrUserNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// RoleRepository はロールの参照とユーザーへの割り当てを扱います。
type RoleRepository interface {
	// FindByID returns ErrRoleNotFound when id is unknown.
	FindByID(ctx context.Context, id uint) (*entity.Role, error)
	// FindByNames returns the roles whose names are in names; unknown names are simply absent.
	FindByNames(ctx context.Context, names []string) ([]entity.Role, error)
	// Assign inserts one UserRole row per role id.
	Assign(ctx context.Context, userID uint, roleIDs []uint) error
	// NamesByUserID returns the user's role names ordered by role id.
	NamesByUserID(ctx context.Context, userID uint) ([]string, error)
}

// GitlabUserRepository はローカルユーザーとGitLabアカウントの対応を扱います。
type GitlabUserRepository interface {
	// Create returns ErrGitlabUserExists when the user already has a mapping.
	Create(ctx context.Context, m *entity.GitlabUser) error
	// FindByUserID returns ErrGitlabUserNotFound when the user has no mapping.
	FindByUserID(ctx context.Context, userID uint) (*entity.GitlabUser, error)
}

// IdentityStore groups the repositories that share one database handle.
type IdentityStore interface {
	Users() UserRepository
	Roles() RoleRepository
	GitlabUsers() GitlabUserRepository
}

// UnitOfWork runs fn inside a single transaction. The store passed to fn is
// bound to that transaction; any error returned by fn rolls back every write.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, store IdentityStore) error) error
}

// RemoteIdentityProvider はGitLab上のアカウントを作成・削除します。
type RemoteIdentityProvider interface {
	// CreateAccount is not idempotent at the provider.
	CreateAccount(ctx context.Context, account entity.RemoteAccount) (int64, error)
	DeleteAccount(ctx context.Context, remoteID int64) error
}

// TokenGenerator はアクセストークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	GenerateToken(userID uint, username string, roles []string) (string, error)
	TTL() time.Duration
}

// SessionRepository abstracts the persistence layer for session entities.
type SessionRepository interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID (refresh token value).
	// Returns ErrSessionNotFound when absent.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke marks a session as revoked by setting RevokedAt.
	Revoke(ctx context.Context, id string) error

	// RevokeAllByUserID revokes all sessions for a given user.
	RevokeAllByUserID(ctx context.Context, userID uint) error

	// DeleteExpired removes all expired sessions from storage.
	// Returns the number of deleted sessions.
	DeleteExpired(ctx context.Context) (int64, error)

	// CountByUserID returns the number of active sessions for a user.
	CountByUserID(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUserID deletes the oldest active session for a user.
	DeleteOldestByUserID(ctx context.Context, userID uint) error
}
