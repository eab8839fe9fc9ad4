package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateSpa        = "CREATE_SPA"
	ActionUpdateSpa        = "UPDATE_SPA"
	ActionCreateBranch     = "CREATE_BRANCH"
	ActionUpdateBranch     = "UPDATE_BRANCH"
	ActionDeleteBranch     = "DELETE_BRANCH"
	ActionCreateUser       = "CREATE_USER"
	ActionUpdateUser       = "UPDATE_USER"
	ActionDeleteUser       = "DELETE_USER"
	ActionCreateService    = "CREATE_SERVICE"
	ActionUpdateService    = "UPDATE_SERVICE"
	ActionDeleteService    = "DELETE_SERVICE"
	ActionBookAppointment  = "BOOK_APPOINTMENT"
	ActionCompleteVisit    = "COMPLETE_APPOINTMENT"
	ActionCancelVisit      = "CANCEL_APPOINTMENT"
	ActionRecordPayment    = "RECORD_PAYMENT"
	ActionCreateManicurist = "CREATE_MANICURIST"
	ActionUpdateManicurist = "UPDATE_MANICURIST"
)

// AuditLog tracks Who, What, and When for critical tenant changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SpaID      *uuid.UUID `gorm:"type:uuid;index" json:"spa_id"` // Nullable for super-admin actions
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
