package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lucius_backend/internal/feature/auth/domain/entity"
	"lucius_backend/internal/feature/auth/usecase"
)

type roleGorm struct {
	db *gorm.DB
}

var _ usecase.RoleRepository = (*roleGorm)(nil)

// NewRoleGorm creates a RoleRepository backed by gorm.
func NewRoleGorm(db *gorm.DB) *roleGorm {
	return &roleGorm{db: db}
}

func (r *roleGorm) FindByID(ctx context.Context, id uint) (*entity.Role, error) {
	var role entity.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleGorm) FindByNames(ctx context.Context, names []string) ([]entity.Role, error) {
	var roles []entity.Role
	if len(names) == 0 {
		return roles, nil
	}
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// Assign はロールをまとめて割り当てます。
func (r *roleGorm) Assign(ctx context.Context, userID uint, roleIDs []uint) error {
	if len(roleIDs) == 0 {
		return nil
	}
	rows := make([]entity.UserRole, len(roleIDs))
	for i, id := range roleIDs {
		rows[i] = entity.UserRole{UserID: userID, RoleID: id}
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *roleGorm) NamesByUserID(ctx context.Context, userID uint) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).
		Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.id").
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
