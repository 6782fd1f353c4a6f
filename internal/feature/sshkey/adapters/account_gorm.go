package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lucius_backend/internal/feature/sshkey/usecase"
)

// gitlabAccount is the read model of the gitlab_users table owned by the auth feature.
type gitlabAccount struct {
	UserID   uint
	GitlabID int64
}

func (gitlabAccount) TableName() string { return "gitlab_users" }

type accountGorm struct {
	db *gorm.DB
}

var _ usecase.AccountResolver = (*accountGorm)(nil)

func NewAccountGorm(db *gorm.DB) *accountGorm {
	return &accountGorm{db: db}
}

func (r *accountGorm) GitlabID(ctx context.Context, userID uint) (int64, error) {
	var a gitlabAccount
	err := r.db.WithContext(ctx).Select("user_id", "gitlab_id").Where("user_id = ?", userID).Take(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, usecase.ErrGitlabUserNotFound
		}
		return 0, err
	}
	return a.GitlabID, nil
}
