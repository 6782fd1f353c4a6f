package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lucius_backend/internal/feature/auth/domain/entity"
	"lucius_backend/internal/feature/auth/usecase"
	"lucius_backend/internal/platform/externalapi/gitlab"
	"lucius_backend/internal/platform/externalapi/gitlab/dto"
	"lucius_backend/internal/shared/apperr"
)

type mockUsersAPI struct {
	CreateUserFunc func(ctx context.Context, req dto.CreateUserRequest) (*dto.User, error)
	DeleteUserFunc func(ctx context.Context, id int64) error
}

func (m *mockUsersAPI) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.User, error) {
	return m.CreateUserFunc(ctx, req)
}

func (m *mockUsersAPI) DeleteUser(ctx context.Context, id int64) error {
	return m.DeleteUserFunc(ctx, id)
}

func TestGitlabIdentity_CreateAccount(t *testing.T) {
	t.Parallel()

	var got dto.CreateUserRequest
	g := NewGitlabIdentity(&mockUsersAPI{
		CreateUserFunc: func(_ context.Context, req dto.CreateUserRequest) (*dto.User, error) {
			got = req
			return &dto.User{ID: 42}, nil
		},
	})

	id, err := g.CreateAccount(context.Background(), entity.RemoteAccount{
		Username: "alice", Name: "alice", Password: "pw", Email: "a@x.io",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, dto.CreateUserRequest{Username: "alice", Name: "alice", Password: "pw", Email: "a@x.io"}, got)
}

func TestGitlabIdentity_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantKind apperr.Kind
		wantIs   error
	}{
		{"http error", &gitlab.APIError{StatusCode: http.StatusConflict}, apperr.KindRemoteCallFailed, usecase.ErrRemoteCallFailed},
		{"server error", &gitlab.APIError{StatusCode: http.StatusBadGateway}, apperr.KindRemoteCallFailed, usecase.ErrRemoteCallFailed},
		{"network error", errors.New("dial tcp: connection refused"), apperr.KindRemoteCallFailed, usecase.ErrRemoteCallFailed},
		{"timeout", context.DeadlineExceeded, apperr.KindRemoteCallFailed, usecase.ErrRemoteCallFailed},
		{"malformed", fmt.Errorf("%w: missing id", gitlab.ErrMalformedResponse), apperr.KindUnexpected, usecase.ErrRemoteResponseMalformed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewGitlabIdentity(&mockUsersAPI{
				CreateUserFunc: func(context.Context, dto.CreateUserRequest) (*dto.User, error) { return nil, tt.err },
				DeleteUserFunc: func(context.Context, int64) error { return tt.err },
			})

			_, err := g.CreateAccount(context.Background(), entity.RemoteAccount{Username: "x"})
			assert.ErrorIs(t, err, tt.wantIs)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))

			err = g.DeleteAccount(context.Background(), 1)
			assert.ErrorIs(t, err, tt.wantIs)
		})
	}
}
