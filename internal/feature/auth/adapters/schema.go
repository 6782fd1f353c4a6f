package adapters

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lucius_backend/internal/feature/auth/domain/entity"
)

// AutoMigrate はSQLite等、gooseマイグレーションを使わない環境向けにテーブルを作成します。
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Role{},
		&entity.UserRole{},
		&entity.GitlabUser{},
		&sessionRow{},
	); err != nil {
		return fmt.Errorf("auto migrate auth tables: %w", err)
	}
	return nil
}

// SeedRoles inserts the reference roles, leaving existing rows untouched.
func SeedRoles(db *gorm.DB) error {
	roles := make([]entity.Role, len(entity.DefaultRoles))
	copy(roles, entity.DefaultRoles)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error; err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}
