package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AppointmentStatus enum constants
const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
	AppointmentNoShow    = "NO_SHOW"
)

// Appointment is a booking for one client at one branch. Service lines live in
// AppointmentService; money totals are denormalized here when the appointment
// completes so dashboard aggregates never re-walk line items.
type Appointment struct {
	ID           uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpaID        uuid.UUID            `gorm:"type:uuid;not null;index" json:"spa_id"`
	BranchID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"branch_id"`
	ClientID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"client_id"`
	Client       Client               `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ManicuristID uuid.UUID            `gorm:"type:uuid;not null;index" json:"manicurist_id"`
	Manicurist   Manicurist           `gorm:"foreignKey:ManicuristID" json:"manicurist,omitempty"`
	ScheduledAt  time.Time            `gorm:"not null;index" json:"scheduled_at"`
	Status       string               `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	Services     []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services,omitempty"`
	Total        decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0" json:"total"`
	Notes        string               `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt       `gorm:"index" json:"-"`
}

// AppointmentService is one service line performed within an appointment.
// Price and kit cost are captured at booking time so later catalog edits do
// not rewrite history.
type AppointmentService struct {
	ID                        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppointmentID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"appointment_id"`
	SpaServiceID              uuid.UUID       `gorm:"type:uuid;not null;index" json:"spa_service_id"`
	SpaService                SpaService      `gorm:"foreignKey:SpaServiceID" json:"spa_service,omitempty"`
	Price                     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	KitCost                   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"kit_cost"`
	DiscountAmount            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount_amount"`
	DiscountAffectsCommission bool            `gorm:"not null;default:false" json:"discount_affects_commission"`
	CreatedAt                 time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
