package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lucius_backend/internal/feature/auth/domain/entity"
	"lucius_backend/internal/feature/auth/usecase"
	"lucius_backend/internal/platform/db"
)

// setupTestDB prepares an in-memory SQLite database with the auth tables and seeded roles.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, AutoMigrate(gdb))
	require.NoError(t, SeedRoles(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func newUser(name string) *entity.User {
	return &entity.User{
		Username:    name,
		Email:       name + "@example.com",
		Password:    "hashed_password",
		MemberSince: time.Now(),
	}
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		user := newUser("alice")
		require.NoError(t, repo.Create(context.Background(), user))
		assert.NotZero(t, user.ID, "ID is not set")
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		require.NoError(t, repo.Create(context.Background(), newUser("dup")))
		err := repo.Create(context.Background(), newUser("dup"))

		assert.ErrorIs(t, err, usecase.ErrUserAlreadyExists)
	})
}

func TestUserGorm_Find(t *testing.T) {
	repo := NewUserGorm(setupTestDB(t))
	ctx := context.Background()

	user := newUser("bob")
	require.NoError(t, repo.Create(ctx, user))

	byName, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "bob@example.com", byName.Email)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", byID.Username)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestSeedRoles_Idempotent(t *testing.T) {
	gdb := setupTestDB(t)
	require.NoError(t, SeedRoles(gdb))

	var count int64
	require.NoError(t, gdb.Model(&entity.Role{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestRoleGorm(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewRoleGorm(gdb)
	ctx := context.Background()

	t.Run("find default role", func(t *testing.T) {
		r, err := repo.FindByID(ctx, entity.DefaultRoleID)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleStudent, r.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 99)
		assert.ErrorIs(t, err, usecase.ErrRoleNotFound)
	})

	t.Run("find by names skips unknown", func(t *testing.T) {
		roles, err := repo.FindByNames(ctx, []string{"admin", "ghost", "mentor"})
		require.NoError(t, err)
		require.Len(t, roles, 2)
		assert.Equal(t, "mentor", roles[0].Name)
		assert.Equal(t, "admin", roles[1].Name)
	})

	t.Run("assign and list names", func(t *testing.T) {
		users := NewUserGorm(gdb)
		u := newUser("carol")
		require.NoError(t, users.Create(ctx, u))

		require.NoError(t, repo.Assign(ctx, u.ID, []uint{3, 1}))

		names, err := repo.NamesByUserID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"student", "admin"}, names)
	})

	t.Run("duplicate assignment fails", func(t *testing.T) {
		users := NewUserGorm(gdb)
		u := newUser("dave")
		require.NoError(t, users.Create(ctx, u))
		require.NoError(t, repo.Assign(ctx, u.ID, []uint{1}))

		assert.Error(t, repo.Assign(ctx, u.ID, []uint{1}))
	})

	t.Run("no roles", func(t *testing.T) {
		names, err := repo.NamesByUserID(ctx, 12345)
		require.NoError(t, err)
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})
}

func TestGitlabUserGorm(t *testing.T) {
	repo := NewGitlabUserGorm(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByUserID(ctx, 1)
	assert.ErrorIs(t, err, usecase.ErrGitlabUserNotFound)

	require.NoError(t, repo.Create(ctx, &entity.GitlabUser{UserID: 1, GitlabID: 501, CreatedAt: time.Now()}))

	m, err := repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(501), m.GitlabID)

	// 2件目は上書きせず Conflict
	err = repo.Create(ctx, &entity.GitlabUser{UserID: 1, GitlabID: 777, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, usecase.ErrGitlabUserExists)

	m, err = repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(501), m.GitlabID)
}

func TestUnitOfWork_RollbackOnError(t *testing.T) {
	gdb := setupTestDB(t)
	uow := NewUnitOfWork(gdb)
	ctx := context.Background()

	err := uow.Do(ctx, func(ctx context.Context, store usecase.IdentityStore) error {
		u := newUser("eve")
		if err := store.Users().Create(ctx, u); err != nil {
			return err
		}
		if err := store.Roles().Assign(ctx, u.ID, []uint{1}); err != nil {
			return err
		}
		return usecase.ErrRemoteCallFailed
	})
	assert.ErrorIs(t, err, usecase.ErrRemoteCallFailed)

	var users, userRoles int64
	require.NoError(t, gdb.Model(&entity.User{}).Count(&users).Error)
	require.NoError(t, gdb.Model(&entity.UserRole{}).Count(&userRoles).Error)
	assert.Zero(t, users)
	assert.Zero(t, userRoles)
}

func TestUnitOfWork_Commit(t *testing.T) {
	gdb := setupTestDB(t)
	uow := NewUnitOfWork(gdb)
	ctx := context.Background()

	require.NoError(t, uow.Do(ctx, func(ctx context.Context, store usecase.IdentityStore) error {
		return store.Users().Create(ctx, newUser("frank"))
	}))

	_, err := NewIdentityStore(gdb).Users().FindByUsername(ctx, "frank")
	assert.NoError(t, err)
}
