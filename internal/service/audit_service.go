package service

import (
	"context"
	"encoding/json"

	"backend/internal/auth"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"

	"github.com/google/uuid"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	SpaID      string `json:"spa_id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

// AuditWriter is the write-side dependency other services use to record
// actions. Writes are best-effort: a failed audit row never fails the
// operation it describes.
type AuditWriter interface {
	Write(ctx context.Context, spaID *uuid.UUID, userID *uuid.UUID, action, entityID, entityName string, details interface{})
}

type AuditService interface {
	AuditWriter
	GetAuditLogs(ctx context.Context, ident auth.Identity, spaID *uuid.UUID, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Write(ctx context.Context, spaID *uuid.UUID, userID *uuid.UUID, action, entityID, entityName string, details interface{}) {
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		SpaID:      spaID,
		UserID:     userID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}

	_ = s.repo.Log(ctx, &entry)
}

// GetAuditLogs retrieves paginated audit rows. Super admins see all tenants;
// everyone else only their own spa.
func (s *auditService) GetAuditLogs(ctx context.Context, ident auth.Identity, spaID *uuid.UUID, page, limit int) ([]AuditLogResponse, int64, error) {
	if !ident.IsSuperAdmin {
		if ident.SpaID == nil {
			return nil, 0, apperr.Forbidden("no spa assignment")
		}
		if spaID == nil || *spaID != *ident.SpaID {
			spaID = ident.SpaID
		}
	}

	logs, total, err := s.repo.ListBySpa(ctx, spaID, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		item := AuditLogResponse{
			ID:         l.ID.String(),
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			UserName:   "System",
			CreatedAt:  l.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if l.SpaID != nil {
			item.SpaID = l.SpaID.String()
		}
		if l.UserID != nil {
			item.UserID = l.UserID.String()
		}
		if l.User != nil {
			item.UserName = l.User.Name
		}
		res = append(res, item)
	}

	return res, total, nil
}
