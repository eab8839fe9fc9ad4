package repository

import (
	"backend/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpaRepository interface {
	Create(ctx context.Context, spa *model.Spa) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Spa, error)
	GetBySlug(ctx context.Context, slug string) (*model.Spa, error)
	List(ctx context.Context, page, limit int) ([]model.Spa, int64, error)
	Update(ctx context.Context, spa *model.Spa) error
}

type spaRepository struct {
	db *gorm.DB
}

func NewSpaRepository(db *gorm.DB) SpaRepository {
	return &spaRepository{db: db}
}

func (r *spaRepository) Create(ctx context.Context, spa *model.Spa) error {
	return GetDB(ctx, r.db).Create(spa).Error
}

func (r *spaRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Spa, error) {
	var spa model.Spa
	if err := GetDB(ctx, r.db).First(&spa, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &spa, nil
}

func (r *spaRepository) GetBySlug(ctx context.Context, slug string) (*model.Spa, error) {
	var spa model.Spa
	if err := GetDB(ctx, r.db).First(&spa, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &spa, nil
}

func (r *spaRepository) List(ctx context.Context, page, limit int) ([]model.Spa, int64, error) {
	var spas []model.Spa
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Spa{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&spas).Error; err != nil {
		return nil, 0, err
	}

	return spas, total, nil
}

func (r *spaRepository) Update(ctx context.Context, spa *model.Spa) error {
	return GetDB(ctx, r.db).Save(spa).Error
}
