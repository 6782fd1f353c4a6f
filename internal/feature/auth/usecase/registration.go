package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lucius_backend/internal/feature/auth/domain/entity"
)

// compensationTimeout bounds the remote account deletion after a failed registration.
const compensationTimeout = 10 * time.Second

// RegisterInput はユーザー登録の入力です。Roles が空の場合はデフォルトロールを割り当てます。
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Roles    []string
}

// RegisterOutput は登録結果です。
type RegisterOutput struct {
	UserID   uint
	Username string
	Roles    []string
	GitlabID int64
}

// registrationUsecase はローカルのユーザー作成とGitLabアカウント作成を一つの処理として扱います。
type registrationUsecase struct {
	uow        UnitOfWork
	remote     RemoteIdentityProvider
	compensate bool
	now        func() time.Time
	hashCost   int
}

// NewRegistrationUsecase は registrationUsecase を生成します。
// compensate が true の場合、GitLabアカウント作成後にローカル処理が失敗するとそのアカウントを削除します。
func NewRegistrationUsecase(uow UnitOfWork, remote RemoteIdentityProvider, compensate bool) *registrationUsecase {
	return &registrationUsecase{
		uow:        uow,
		remote:     remote,
		compensate: compensate,
		now:        time.Now,
		hashCost:   bcrypt.DefaultCost,
	}
}

// Register は以下を1トランザクションで実行します。
//  1. ユーザー作成（ユーザー名重複は ErrUserAlreadyExists）
//  2. ロール割り当て（未知のロール名は ErrRoleNotFound）
//  3. GitLabアカウント作成（1回のみ）
//  4. GitLabアカウントとの対応を保存（既存なら ErrGitlabUserExists）
//
// いずれかが失敗した場合、ローカルの書き込みはすべてロールバックされます。
func (u *registrationUsecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Password) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, ErrInvalidInput
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var (
		out           *RegisterOutput
		remoteID      int64
		remoteCreated bool
	)
	err = u.uow.Do(ctx, func(ctx context.Context, store IdentityStore) error {
		// 1. ユーザー作成
		if _, err := store.Users().FindByUsername(ctx, in.Username); err == nil {
			return ErrUserAlreadyExists
		} else if !errors.Is(err, ErrUserNotFound) {
			return err
		}
		user := &entity.User{
			Username:    in.Username,
			Email:       in.Email,
			Password:    string(hashed),
			MemberSince: u.now(),
		}
		if err := store.Users().Create(ctx, user); err != nil {
			return err
		}

		// 2. ロール割り当て
		roles, err := resolveRoles(ctx, store.Roles(), in.Roles)
		if err != nil {
			return err
		}
		ids := make([]uint, len(roles))
		names := make([]string, len(roles))
		for i, r := range roles {
			ids[i], names[i] = r.ID, r.Name
		}
		if err := store.Roles().Assign(ctx, user.ID, ids); err != nil {
			return err
		}

		// 3. GitLabアカウント作成
		id, err := u.remote.CreateAccount(ctx, entity.RemoteAccount{
			Username: in.Username,
			Name:     in.Username,
			Password: in.Password,
			Email:    in.Email,
		})
		if err != nil {
			return err
		}
		remoteID, remoteCreated = id, true

		// 4. 対応を保存
		if _, err := store.GitlabUsers().FindByUserID(ctx, user.ID); err == nil {
			return ErrGitlabUserExists
		} else if !errors.Is(err, ErrGitlabUserNotFound) {
			return err
		}
		if err := store.GitlabUsers().Create(ctx, &entity.GitlabUser{
			UserID:    user.ID,
			GitlabID:  id,
			CreatedAt: u.now(),
		}); err != nil {
			return err
		}

		out = &RegisterOutput{UserID: user.ID, Username: user.Username, Roles: names, GitlabID: id}
		return nil
	})
	if err != nil {
		if remoteCreated {
			u.discardRemoteAccount(ctx, remoteID, err)
		}
		slog.Warn("registration failed", "username", in.Username, "error", err)
		return nil, err
	}

	slog.Info("user registered", "user_id", out.UserID, "username", out.Username, "gitlab_id", out.GitlabID)
	return out, nil
}

// discardRemoteAccount はローカル処理が失敗した後、作成済みのGitLabアカウントを削除します。
// 削除に失敗しても元のエラーを優先し、ここではログ出力のみ行います。
func (u *registrationUsecase) discardRemoteAccount(ctx context.Context, remoteID int64, cause error) {
	if !u.compensate {
		slog.Error("gitlab account left without local user", "gitlab_id", remoteID, "cause", cause)
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()
	if err := u.remote.DeleteAccount(cctx, remoteID); err != nil {
		slog.Error("failed to delete orphaned gitlab account", "gitlab_id", remoteID, "error", err, "cause", cause)
		return
	}
	slog.Info("deleted gitlab account after failed registration", "gitlab_id", remoteID)
}

// resolveRoles は要求されたロール名をすべて解決してから返します。
// 重複した名前は1つにまとめ、1つでも未知の名前があれば何も返しません。
func resolveRoles(ctx context.Context, repo RoleRepository, requested []string) ([]entity.Role, error) {
	if len(requested) == 0 {
		r, err := repo.FindByID(ctx, entity.DefaultRoleID)
		if err != nil {
			return nil, err
		}
		return []entity.Role{*r}, nil
	}

	names := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, n := range requested {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}

	found, err := repo.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]entity.Role, len(found))
	for _, r := range found {
		byName[r.Name] = r
	}

	roles := make([]entity.Role, 0, len(names))
	for _, n := range names {
		r, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrRoleNotFound, n)
		}
		roles = append(roles, r)
	}
	return roles, nil
}
