package promos

import (
	"context"
	"errors"
	"fmt"

	"boothreserve/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Finder
	Create(ctx context.Context, promo *Promo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Promo, error)
	List(ctx context.Context, query ListQuery) ([]Promo, error)
	Update(ctx context.Context, promo *Promo) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, promo *Promo) error {
	if err := r.db.WithContext(ctx).Create(promo).Error; err != nil {
		if database.IsUniqueViolation(err, "ux_promos_code") {
			return ErrDuplicateCode
		}
		if database.IsCheckViolation(err) {
			return fmt.Errorf("%w: %v", ErrInvalidPromo, err)
		}
		return fmt.Errorf("create promo: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Promo, error) {
	var promo Promo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("get promo: %w", err)
	}
	return &promo, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*Promo, error) {
	var promo Promo
	err := r.db.WithContext(ctx).Where("code = ?", NormalizeCode(code)).First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("find promo by code: %w", err)
	}
	return &promo, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Promo, error) {
	var promos []Promo

	q := r.db.WithContext(ctx).Model(&Promo{})
	if query.IsActive != nil {
		q = q.Where("is_active = ?", *query.IsActive)
	}
	if query.DiscountType != "" {
		q = q.Where("discount_type = ?", query.DiscountType)
	}

	if err := q.Order("created_at DESC").Find(&promos).Error; err != nil {
		return nil, fmt.Errorf("list promos: %w", err)
	}
	return promos, nil
}

func (r *repository) Update(ctx context.Context, promo *Promo) error {
	result := r.db.WithContext(ctx).Save(promo)
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error, "ux_promos_code") {
			return ErrDuplicateCode
		}
		if database.IsCheckViolation(result.Error) {
			return fmt.Errorf("%w: %v", ErrInvalidPromo, result.Error)
		}
		return fmt.Errorf("update promo: %w", result.Error)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Promo{})
	if result.Error != nil {
		return fmt.Errorf("delete promo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPromoNotFound
	}
	return nil
}
