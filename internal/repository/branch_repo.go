package repository

import (
	"backend/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	ListBySpa(ctx context.Context, spaID uuid.UUID, page, limit int) ([]model.Branch, int64, error)
	Update(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindBranchSpaID(ctx context.Context, branchID uuid.UUID) (uuid.UUID, error)
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *model.Branch) error {
	return GetDB(ctx, r.db).Create(branch).Error
}

func (r *branchRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	var branch model.Branch
	if err := GetDB(ctx, r.db).First(&branch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) ListBySpa(ctx context.Context, spaID uuid.UUID, page, limit int) ([]model.Branch, int64, error) {
	var branches []model.Branch
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Branch{}).Where("spa_id = ?", spaID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&branches).Error; err != nil {
		return nil, 0, err
	}

	return branches, total, nil
}

func (r *branchRepository) Update(ctx context.Context, branch *model.Branch) error {
	return GetDB(ctx, r.db).Save(branch).Error
}

func (r *branchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Branch{}).Error
}

// FindBranchSpaID returns the owning spa of a branch, for guard checks.
func (r *branchRepository) FindBranchSpaID(ctx context.Context, branchID uuid.UUID) (uuid.UUID, error) {
	var branch model.Branch
	if err := GetDB(ctx, r.db).Select("id", "spa_id").First(&branch, "id = ?", branchID).Error; err != nil {
		return uuid.Nil, err
	}
	return branch.SpaID, nil
}
