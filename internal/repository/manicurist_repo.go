package repository

import (
	"backend/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ManicuristRepository interface {
	Create(ctx context.Context, m *model.Manicurist) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Manicurist, error)
	ListByBranch(ctx context.Context, spaID uuid.UUID, branchID *uuid.UUID, page, limit int) ([]model.Manicurist, int64, error)
	Update(ctx context.Context, m *model.Manicurist) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type manicuristRepository struct {
	db *gorm.DB
}

func NewManicuristRepository(db *gorm.DB) ManicuristRepository {
	return &manicuristRepository{db: db}
}

func (r *manicuristRepository) Create(ctx context.Context, m *model.Manicurist) error {
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *manicuristRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Manicurist, error) {
	var m model.Manicurist
	if err := GetDB(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *manicuristRepository) ListByBranch(ctx context.Context, spaID uuid.UUID, branchID *uuid.UUID, page, limit int) ([]model.Manicurist, int64, error) {
	var staff []model.Manicurist
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Manicurist{}).Where("spa_id = ?", spaID)
	if branchID != nil {
		db = db.Where("branch_id = ?", *branchID)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name asc").Offset(offset).Limit(limit).Find(&staff).Error; err != nil {
		return nil, 0, err
	}

	return staff, total, nil
}

func (r *manicuristRepository) Update(ctx context.Context, m *model.Manicurist) error {
	return GetDB(ctx, r.db).Save(m).Error
}

func (r *manicuristRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Manicurist{}).Error
}
