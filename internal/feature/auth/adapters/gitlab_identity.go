package adapters

import (
	"context"
	"errors"
	"fmt"

	"lucius_backend/internal/feature/auth/domain/entity"
	"lucius_backend/internal/feature/auth/usecase"
	"lucius_backend/internal/platform/externalapi/gitlab"
	"lucius_backend/internal/platform/externalapi/gitlab/dto"
)

// gitlabUsersAPI is the part of the GitLab client used for account management.
type gitlabUsersAPI interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// gitlabIdentity は RemoteIdentityProvider をGitLabの管理者APIで実装します。
type gitlabIdentity struct {
	api gitlabUsersAPI
}

var _ usecase.RemoteIdentityProvider = (*gitlabIdentity)(nil)

func NewGitlabIdentity(api gitlabUsersAPI) *gitlabIdentity {
	return &gitlabIdentity{api: api}
}

func (g *gitlabIdentity) CreateAccount(ctx context.Context, a entity.RemoteAccount) (int64, error) {
	u, err := g.api.CreateUser(ctx, dto.CreateUserRequest{
		Username: a.Username,
		Name:     a.Name,
		Password: a.Password,
		Email:    a.Email,
	})
	if err != nil {
		return 0, remoteError(err)
	}
	return u.ID, nil
}

func (g *gitlabIdentity) DeleteAccount(ctx context.Context, remoteID int64) error {
	if err := g.api.DeleteUser(ctx, remoteID); err != nil {
		return remoteError(err)
	}
	return nil
}

// remoteError はGitLabクライアントのエラーをユースケースのエラーに変換します。
// 形式不正のレスポンスは Unexpected、それ以外（通信失敗・タイムアウト・エラーステータス）は RemoteCallFailed です。
func remoteError(err error) error {
	if errors.Is(err, gitlab.ErrMalformedResponse) {
		return fmt.Errorf("%w: %w", usecase.ErrRemoteResponseMalformed, err)
	}
	return fmt.Errorf("%w: %w", usecase.ErrRemoteCallFailed, err)
}
