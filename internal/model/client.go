package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a spa customer. DocumentNumber is unique within a spa, not globally.
type Client struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpaID          uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_clients_spa_document" json:"spa_id"`
	BranchID       *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Email          string         `gorm:"type:varchar(255)" json:"email"`
	Phone          string         `gorm:"type:varchar(20)" json:"phone"`
	DocumentNumber string         `gorm:"type:varchar(50);uniqueIndex:idx_clients_spa_document" json:"document_number"`
	Notes          string         `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
