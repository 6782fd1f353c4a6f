package usecase

import (
	"context"

	"lucius_backend/internal/feature/sshkey/domain/entity"
)

// AccountResolver はローカルユーザーIDから対応するGitLabユーザーIDを引きます。
// 対応が無い場合は ErrGitlabUserNotFound を返します。
type AccountResolver interface {
	GitlabID(ctx context.Context, userID uint) (int64, error)
}

// KeyProvider operates on the SSH keys of one GitLab user.
type KeyProvider interface {
	List(ctx context.Context, gitlabID int64) ([]entity.SSHKey, error)
	Add(ctx context.Context, gitlabID int64, title, key string) (*entity.SSHKey, error)
	Delete(ctx context.Context, gitlabID, keyID int64) error
}
