package repository

import (
	"backend/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepository interface {
	Create(ctx context.Context, svc *model.SpaService) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.SpaService, error)
	ListBySpa(ctx context.Context, spaID uuid.UUID, page, limit int) ([]model.SpaService, int64, error)
	Update(ctx context.Context, svc *model.SpaService) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Create(ctx context.Context, svc *model.SpaService) error {
	return GetDB(ctx, r.db).Create(svc).Error
}

func (r *catalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SpaService, error) {
	var svc model.SpaService
	if err := GetDB(ctx, r.db).First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *catalogRepository) ListBySpa(ctx context.Context, spaID uuid.UUID, page, limit int) ([]model.SpaService, int64, error) {
	var services []model.SpaService
	var total int64

	db := GetDB(ctx, r.db).Model(&model.SpaService{}).Where("spa_id = ?", spaID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name asc").Offset(offset).Limit(limit).Find(&services).Error; err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

func (r *catalogRepository) Update(ctx context.Context, svc *model.SpaService) error {
	return GetDB(ctx, r.db).Save(svc).Error
}

func (r *catalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.SpaService{}).Error
}
