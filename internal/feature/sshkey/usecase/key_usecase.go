package usecase

import (
	"context"
	"fmt"
	"strings"

	"lucius_backend/internal/feature/sshkey/domain/entity"
)

type keyUsecase struct {
	accounts AccountResolver
	keys     KeyProvider
}

func NewKeyUsecase(accounts AccountResolver, keys KeyProvider) *keyUsecase {
	return &keyUsecase{accounts: accounts, keys: keys}
}

// List は呼び出し元ユーザーのSSH鍵一覧をGitLabから取得し、そのまま返します。
func (u *keyUsecase) List(ctx context.Context, userID uint) ([]entity.SSHKey, error) {
	gid, err := u.accounts.GitlabID(ctx, userID)
	if err != nil {
		return nil, err
	}
	keys, err := u.keys.List(ctx, gid)
	if err != nil {
		return nil, fmt.Errorf("list ssh keys: %w", err)
	}
	return keys, nil
}

// Add は鍵を登録します。GitLabが鍵を拒否した場合は検証メッセージをそのまま返します。
func (u *keyUsecase) Add(ctx context.Context, userID uint, title, key string) (*entity.SSHKey, error) {
	title = strings.TrimSpace(title)
	key = strings.TrimSpace(key)
	if title == "" || key == "" {
		return nil, ErrInvalidInput
	}
	gid, err := u.accounts.GitlabID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.keys.Add(ctx, gid, title, key)
}

// Delete removes one key. Keys that do not belong to the caller are reported as ErrKeyNotFound.
func (u *keyUsecase) Delete(ctx context.Context, userID uint, keyID int64) error {
	if keyID <= 0 {
		return ErrKeyNotFound
	}
	gid, err := u.accounts.GitlabID(ctx, userID)
	if err != nil {
		return err
	}
	return u.keys.Delete(ctx, gid, keyID)
}
