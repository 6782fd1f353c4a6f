// Package adapters はcasesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lucius_backend/internal/feature/cases/domain/entity"
	"lucius_backend/internal/feature/cases/usecase"
)

type caseGorm struct {
	db *gorm.DB
}

var _ usecase.CaseRepository = (*caseGorm)(nil)

func NewCaseGorm(db *gorm.DB) *caseGorm {
	return &caseGorm{db: db}
}

// AutoMigrate creates the cases table where goose migrations are not used.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Case{}); err != nil {
		return fmt.Errorf("auto migrate cases: %w", err)
	}
	return nil
}

func (r *caseGorm) Create(ctx context.Context, c *entity.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caseGorm) FindByID(ctx context.Context, id uint) (*entity.Case, error) {
	var c entity.Case
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCaseNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List は新しい順に返します。作成日時が同じ場合はIDの降順です。
func (r *caseGorm) List(ctx context.Context, offset, limit int) ([]entity.Case, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Case{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	items := []entity.Case{}
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *caseGorm) Update(ctx context.Context, c *entity.Case) error {
	res := r.db.WithContext(ctx).Model(c).Select("title", "brief_intro", "content", "demo_url", "updated_at").Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCaseNotFound
	}
	return nil
}

func (r *caseGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Case{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrCaseNotFound
	}
	return nil
}
