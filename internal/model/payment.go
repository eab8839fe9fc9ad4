package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod enum constants
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
)

// Payment records the settled money for one completed appointment.
// Amounts are the calculator's breakdown persisted verbatim.
type Payment struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpaID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"spa_id"`
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"branch_id"`
	AppointmentID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`
	Method         string          `gorm:"type:varchar(20);not null" json:"method"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"subtotal"`    // service prices + kit costs
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount_amount"`
	TransactionFee decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"transaction_fee"`
	Total          decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total"` // what the client actually paid
	PaidAt         time.Time       `gorm:"not null;index" json:"paid_at"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// Commission records the manicurist share of one appointment service line.
type Commission struct {
	ID                   uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpaID                uuid.UUID       `gorm:"type:uuid;not null;index" json:"spa_id"`
	BranchID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"branch_id"`
	ManicuristID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"manicurist_id"`
	AppointmentID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"appointment_id"`
	AppointmentServiceID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_service_id"`
	Rate                 decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate"`
	Base                 decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"base"`
	Amount               decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	SpaNet               decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"spa_net"`
	EarnedAt             time.Time       `gorm:"not null;index" json:"earned_at"`
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
