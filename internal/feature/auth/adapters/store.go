package adapters

import (
	"context"

	"gorm.io/gorm"

	"lucius_backend/internal/feature/auth/usecase"
)

// identityStore bundles the repositories over one gorm handle, which may be a transaction.
type identityStore struct {
	users       *userGorm
	roles       *roleGorm
	gitlabUsers *gitlabUserGorm
}

var _ usecase.IdentityStore = (*identityStore)(nil)

// NewIdentityStore は db を共有するリポジトリ群を生成します。
func NewIdentityStore(db *gorm.DB) *identityStore {
	return &identityStore{
		users:       NewUserGorm(db),
		roles:       NewRoleGorm(db),
		gitlabUsers: NewGitlabUserGorm(db),
	}
}

func (s *identityStore) Users() usecase.UserRepository             { return s.users }
func (s *identityStore) Roles() usecase.RoleRepository             { return s.roles }
func (s *identityStore) GitlabUsers() usecase.GitlabUserRepository { return s.gitlabUsers }

// unitOfWork はGORMのトランザクションで UnitOfWork を実装します。
type unitOfWork struct {
	db *gorm.DB
}

var _ usecase.UnitOfWork = (*unitOfWork)(nil)

func NewUnitOfWork(db *gorm.DB) *unitOfWork {
	return &unitOfWork{db: db}
}

// Do は fn をトランザクション内で実行します。fn がエラーを返すとロールバックされます。
func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context, store usecase.IdentityStore) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewIdentityStore(tx))
	})
}
