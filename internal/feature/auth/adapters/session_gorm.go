package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"lucius_backend/internal/feature/auth/domain/entity"
	"lucius_backend/internal/feature/auth/usecase"
)

// sessionGorm はRedisが使えない場合のSessionRepository実装です。
type sessionGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.SessionRepository = (*sessionGorm)(nil)

func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db, now: time.Now}
}

func (r *sessionGorm) Create(ctx context.Context, s *entity.Session) error {
	row := sessionRow(*s)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *sessionGorm) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var m sessionRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return m.toSession(), nil
}

// Revoke は未失効のセッションを失効させます。存在しないか既に失効済みの場合は ErrSessionNotFound です。
func (r *sessionGorm) Revoke(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&sessionRow{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", r.now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

func (r *sessionGorm) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&sessionRow{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", r.now()).Error
}

func (r *sessionGorm) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", r.now()).
		Delete(&sessionRow{})
	return res.RowsAffected, res.Error
}

func (r *sessionGorm) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&sessionRow{}).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, r.now()).
		Count(&count).Error
	return count, err
}

func (r *sessionGorm) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	var oldest sessionRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, r.now()).
		Order("created_at ASC").
		First(&oldest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&sessionRow{}, "id = ?", oldest.ID).Error
}
