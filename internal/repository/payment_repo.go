package repository

import (
	"backend/internal/model"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Payment, error)
	ListBySpa(ctx context.Context, spaID uuid.UUID, branchID *uuid.UUID, page, limit int) ([]model.Payment, int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := GetDB(ctx, r.db).First(&payment, "appointment_id = ?", appointmentID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListBySpa(ctx context.Context, spaID uuid.UUID, branchID *uuid.UUID, page, limit int) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Payment{}).Where("spa_id = ?", spaID)
	if branchID != nil {
		db = db.Where("branch_id = ?", *branchID)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("paid_at desc").Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// CommissionFilter narrows commission listings for payout views.
type CommissionFilter struct {
	SpaID        uuid.UUID
	BranchID     *uuid.UUID
	ManicuristID *uuid.UUID
	From         *time.Time
	To           *time.Time
}

type CommissionRepository interface {
	Create(ctx context.Context, commission *model.Commission) error
	List(ctx context.Context, filter CommissionFilter, page, limit int) ([]model.Commission, int64, error)
	SumByManicurist(ctx context.Context, filter CommissionFilter) (float64, error)
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(ctx context.Context, commission *model.Commission) error {
	return GetDB(ctx, r.db).Create(commission).Error
}

func (r *commissionRepository) List(ctx context.Context, filter CommissionFilter, page, limit int) ([]model.Commission, int64, error) {
	var rows []model.Commission
	var total int64

	db := r.filtered(ctx, filter)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("earned_at desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *commissionRepository) SumByManicurist(ctx context.Context, filter CommissionFilter) (float64, error) {
	var result struct {
		Value float64
	}
	if err := r.filtered(ctx, filter).Select("COALESCE(SUM(amount), 0) as value").Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Value, nil
}

func (r *commissionRepository) filtered(ctx context.Context, filter CommissionFilter) *gorm.DB {
	db := GetDB(ctx, r.db).Model(&model.Commission{}).Where("spa_id = ?", filter.SpaID)
	if filter.BranchID != nil {
		db = db.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.ManicuristID != nil {
		db = db.Where("manicurist_id = ?", *filter.ManicuristID)
	}
	if filter.From != nil {
		db = db.Where("earned_at >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("earned_at <= ?", *filter.To)
	}
	return db
}
