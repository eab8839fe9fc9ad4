package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Manicurist is a service provider assigned to one branch. CommissionRate, when
// set, overrides the spa-level default for that person's earnings.
type Manicurist struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpaID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"spa_id"`
	BranchID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"branch_id"`
	Branch         Branch           `gorm:"foreignKey:BranchID" json:"-"`
	UserID         *uuid.UUID       `gorm:"type:uuid;index" json:"user_id"` // login account, nullable for staff without access
	Name           string           `gorm:"type:varchar(255);not null" json:"name"`
	Phone          string           `gorm:"type:varchar(20)" json:"phone"`
	CommissionRate *decimal.Decimal `gorm:"type:decimal(10,4)" json:"commission_rate"`
	IsActive       bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}
