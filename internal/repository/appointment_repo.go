package repository

import (
	"backend/internal/model"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentFilter narrows appointment listings. SpaID is mandatory; the
// rest are optional.
type AppointmentFilter struct {
	SpaID        uuid.UUID
	BranchID     *uuid.UUID
	ManicuristID *uuid.UUID
	ClientID     *uuid.UUID
	Status       string
	From         *time.Time
	To           *time.Time
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter, page, limit int) ([]model.Appointment, int64, error)
	Update(ctx context.Context, appt *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateServiceLine(ctx context.Context, line *model.AppointmentService) error
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return GetDB(ctx, r.db).Create(appt).Error
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	err := GetDB(ctx, r.db).
		Preload("Client").
		Preload("Manicurist").
		Preload("Services").
		Preload("Services.SpaService").
		First(&appt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter, page, limit int) ([]model.Appointment, int64, error) {
	var appts []model.Appointment
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Appointment{}).Where("spa_id = ?", filter.SpaID)
	if filter.BranchID != nil {
		db = db.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.ManicuristID != nil {
		db = db.Where("manicurist_id = ?", *filter.ManicuristID)
	}
	if filter.ClientID != nil {
		db = db.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		db = db.Where("scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("scheduled_at <= ?", *filter.To)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Client").Preload("Manicurist").Preload("Services").
		Order("scheduled_at desc").Offset(offset).Limit(limit).Find(&appts).Error; err != nil {
		return nil, 0, err
	}

	return appts, total, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	return GetDB(ctx, r.db).Save(appt).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Appointment{}).Error
}

func (r *appointmentRepository) CreateServiceLine(ctx context.Context, line *model.AppointmentService) error {
	return GetDB(ctx, r.db).Create(line).Error
}
