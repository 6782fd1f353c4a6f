package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lucius_backend/internal/feature/auth/domain/entity"
	"lucius_backend/internal/feature/auth/usecase"
)

// gitlabUserGorm stores the local user to GitLab account mapping.
type gitlabUserGorm struct {
	db *gorm.DB
}

var _ usecase.GitlabUserRepository = (*gitlabUserGorm)(nil)

func NewGitlabUserGorm(db *gorm.DB) *gitlabUserGorm {
	return &gitlabUserGorm{db: db}
}

// Create は対応を追加します。既存の対応を上書きすることはありません。
func (r *gitlabUserGorm) Create(ctx context.Context, m *entity.GitlabUser) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrGitlabUserExists
		}
		return err
	}
	return nil
}

func (r *gitlabUserGorm) FindByUserID(ctx context.Context, userID uint) (*entity.GitlabUser, error) {
	var m entity.GitlabUser
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrGitlabUserNotFound
		}
		return nil, err
	}
	return &m, nil
}
