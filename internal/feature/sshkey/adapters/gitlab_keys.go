package adapters

import (
	"context"
	"errors"
	"fmt"

	"lucius_backend/internal/feature/sshkey/domain/entity"
	"lucius_backend/internal/feature/sshkey/usecase"
	"lucius_backend/internal/platform/externalapi/gitlab"
	"lucius_backend/internal/platform/externalapi/gitlab/dto"
)

// fingerprintField はGitLabが鍵の検証エラーを報告するフィールドです。
const fingerprintField = "fingerprint"

type gitlabKeysAPI interface {
	ListSSHKeys(ctx context.Context, sudoUserID int64) ([]dto.SSHKey, error)
	CreateSSHKey(ctx context.Context, sudoUserID int64, req dto.CreateSSHKeyRequest) (*dto.SSHKey, error)
	DeleteSSHKey(ctx context.Context, sudoUserID, keyID int64) error
}

// gitlabKeys は KeyProvider をGitLabのユーザー鍵APIで実装します（Sudoヘッダーで対象ユーザーとして実行）。
type gitlabKeys struct {
	api gitlabKeysAPI
}

var _ usecase.KeyProvider = (*gitlabKeys)(nil)

func NewGitlabKeys(api gitlabKeysAPI) *gitlabKeys {
	return &gitlabKeys{api: api}
}

func (g *gitlabKeys) List(ctx context.Context, gitlabID int64) ([]entity.SSHKey, error) {
	keys, err := g.api.ListSSHKeys(ctx, gitlabID)
	if err != nil {
		return nil, remoteError(err)
	}
	out := make([]entity.SSHKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, toEntity(k))
	}
	return out, nil
}

// Add は鍵を作成します。
// - 4xxで message.fingerprint がある場合: その先頭メッセージを ValidationRejected として返す
// - 4xxでフィールドが無い場合: Unexpected
// - 5xx・通信失敗: RemoteCallFailed
func (g *gitlabKeys) Add(ctx context.Context, gitlabID int64, title, key string) (*entity.SSHKey, error) {
	k, err := g.api.CreateSSHKey(ctx, gitlabID, dto.CreateSSHKeyRequest{Title: title, Key: key})
	if err != nil {
		var apiErr *gitlab.APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			if msg, ok := apiErr.FieldMessage(fingerprintField); ok {
				return nil, usecase.KeyRejected(msg)
			}
			return nil, fmt.Errorf("%w: %w", usecase.ErrRemoteResponseMalformed, err)
		}
		return nil, remoteError(err)
	}
	e := toEntity(*k)
	return &e, nil
}

// Delete は鍵を削除します。4xxはステータスや本文に関わらず ErrKeyNotFound です。
func (g *gitlabKeys) Delete(ctx context.Context, gitlabID, keyID int64) error {
	err := g.api.DeleteSSHKey(ctx, gitlabID, keyID)
	if err == nil {
		return nil
	}
	var apiErr *gitlab.APIError
	if errors.As(err, &apiErr) && apiErr.IsClientError() {
		return fmt.Errorf("%w: %w", usecase.ErrKeyNotFound, err)
	}
	return remoteError(err)
}

func remoteError(err error) error {
	if errors.Is(err, gitlab.ErrMalformedResponse) {
		return fmt.Errorf("%w: %w", usecase.ErrRemoteResponseMalformed, err)
	}
	return fmt.Errorf("%w: %w", usecase.ErrRemoteCallFailed, err)
}

func toEntity(k dto.SSHKey) entity.SSHKey {
	return entity.SSHKey{
		ID:        k.ID,
		Title:     k.Title,
		Key:       k.Key,
		CreatedAt: k.CreatedAt,
		ExpiresAt: k.ExpiresAt,
		UsageType: k.UsageType,
	}
}
