package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceType enum constants
const (
	ServiceTypeManicure  = "MANICURE"
	ServiceTypePedicure  = "PEDICURE"
	ServiceTypeNailArt   = "NAIL_ART"
	ServiceTypeGelPolish = "GEL_POLISH"
	ServiceTypeAcrylics  = "ACRYLICS"
)

// SpaService is a catalog entry: a service a spa offers, with its list price
// and the material (kit) cost retained by the spa when performed.
type SpaService struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpaID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"spa_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	ServiceType string          `gorm:"type:varchar(20);not null;index" json:"service_type"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	KitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"kit_cost"`
	DurationMin int             `gorm:"not null;default:30" json:"duration_min"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
