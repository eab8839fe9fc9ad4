package repository

import (
	"backend/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	GetByDocument(ctx context.Context, spaID uuid.UUID, documentNumber string) (*model.Client, error)
	ListBySpa(ctx context.Context, spaID uuid.UUID, branchID *uuid.UUID, page, limit int) ([]model.Client, int64, error)
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Create(client).Error
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetByDocument(ctx context.Context, spaID uuid.UUID, documentNumber string) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "spa_id = ? AND document_number = ?", spaID, documentNumber).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) ListBySpa(ctx context.Context, spaID uuid.UUID, branchID *uuid.UUID, page, limit int) ([]model.Client, int64, error) {
	var clients []model.Client
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Client{}).Where("spa_id = ?", spaID)
	if branchID != nil {
		db = db.Where("branch_id = ?", *branchID)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Client{}).Error
}
