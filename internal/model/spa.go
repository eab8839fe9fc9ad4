package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Spa is the tenant root. Every other business record hangs off a spa via
// spa_id and is never visible across tenants.
type Spa struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name               string          `gorm:"type:varchar(255);not null" json:"name"`
	Slug               string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Email              string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone              string          `gorm:"type:varchar(20)" json:"phone"`
	TaxRate            decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"tax_rate"`             // e.g. 0.18 = 18% government tax
	TransactionFeeRate decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"transaction_fee_rate"` // card processor cut
	CommissionRate     decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0.5" json:"commission_rate"`    // default manicurist share
	IsActive           bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Branch is a physical location belonging to exactly one spa. Branch-scoped
// roles (BRANCH_ADMIN, MANICURIST) and their records live beneath it.
type Branch struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpaID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"spa_id"`
	Spa       Spa            `gorm:"foreignKey:SpaID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Address   string         `gorm:"type:text" json:"address"`
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
