package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/auth"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateManicuristRequest struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone"`
	BranchID       string `json:"branch_id" binding:"required"`
	UserID         string `json:"user_id"`
	CommissionRate string `json:"commission_rate"` // decimal string; empty = spa default
}

type UpdateManicuristRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	CommissionRate string `json:"commission_rate"`
	IsActive       *bool  `json:"is_active"`
}

type ManicuristResponse struct {
	ID             string `json:"id"`
	SpaID          string `json:"spa_id"`
	BranchID       string `json:"branch_id"`
	UserID         string `json:"user_id,omitempty"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	CommissionRate string `json:"commission_rate,omitempty"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
}

type ManicuristService interface {
	CreateManicurist(ctx context.Context, ident auth.Identity, spaID uuid.UUID, req CreateManicuristRequest) (*ManicuristResponse, error)
	GetManicurist(ctx context.Context, spaID, id uuid.UUID) (*ManicuristResponse, error)
	ListManicurists(ctx context.Context, spaID uuid.UUID, branchID *uuid.UUID, page, limit int) ([]ManicuristResponse, int64, error)
	UpdateManicurist(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID, req UpdateManicuristRequest) (*ManicuristResponse, error)
	DeleteManicurist(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID) error
}

type manicuristService struct {
	repo     repository.ManicuristRepository
	branches repository.BranchRepository
	audit    AuditWriter
}

func NewManicuristService(repo repository.ManicuristRepository, branches repository.BranchRepository, audit AuditWriter) ManicuristService {
	return &manicuristService{repo: repo, branches: branches, audit: audit}
}

func toManicuristResponse(m *model.Manicurist) *ManicuristResponse {
	res := &ManicuristResponse{
		ID:        m.ID.String(),
		SpaID:     m.SpaID.String(),
		BranchID:  m.BranchID.String(),
		Name:      m.Name,
		Phone:     m.Phone,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.UserID != nil {
		res.UserID = m.UserID.String()
	}
	if m.CommissionRate != nil {
		res.CommissionRate = m.CommissionRate.StringFixed(4)
	}
	return res
}

func (s *manicuristService) getScoped(ctx context.Context, spaID, id uuid.UUID) (*model.Manicurist, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("manicurist not found")
		}
		return nil, apperr.Internal(err)
	}
	if m.SpaID != spaID {
		return nil, apperr.NotFound("manicurist not found")
	}
	return m, nil
}

func parseOptionalRate(value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	rate, err := decimal.NewFromString(value)
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, apperr.Validation("invalid commission_rate",
			apperr.FieldError{Field: "commission_rate", Message: "must be a decimal between 0 and 1"})
	}
	return &rate, nil
}

func (s *manicuristService) CreateManicurist(ctx context.Context, ident auth.Identity, spaID uuid.UUID, req CreateManicuristRequest) (*ManicuristResponse, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, apperr.Validation("invalid branch_id", apperr.FieldError{Field: "branch_id", Message: "must be a UUID"})
	}

	// Branch must belong to the same spa
	branchSpaID, err := s.branches.FindBranchSpaID(ctx, branchID)
	if err != nil || branchSpaID != spaID {
		return nil, apperr.NotFound("branch not found")
	}

	rate, err := parseOptionalRate(req.CommissionRate)
	if err != nil {
		return nil, err
	}

	m := &model.Manicurist{
		SpaID:          spaID,
		BranchID:       branchID,
		Name:           req.Name,
		Phone:          req.Phone,
		CommissionRate: rate,
		IsActive:       true,
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, apperr.Validation("invalid user_id", apperr.FieldError{Field: "user_id", Message: "must be a UUID"})
		}
		m.UserID = &userID
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionCreateManicurist, m.ID.String(), m.Name, req)

	return toManicuristResponse(m), nil
}

func (s *manicuristService) GetManicurist(ctx context.Context, spaID, id uuid.UUID) (*ManicuristResponse, error) {
	m, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return nil, err
	}
	return toManicuristResponse(m), nil
}

func (s *manicuristService) ListManicurists(ctx context.Context, spaID uuid.UUID, branchID *uuid.UUID, page, limit int) ([]ManicuristResponse, int64, error) {
	staff, total, err := s.repo.ListByBranch(ctx, spaID, branchID, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	res := make([]ManicuristResponse, 0, len(staff))
	for i := range staff {
		res = append(res, *toManicuristResponse(&staff[i]))
	}
	return res, total, nil
}

func (s *manicuristService) UpdateManicurist(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID, req UpdateManicuristRequest) (*ManicuristResponse, error) {
	m, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		m.Name = req.Name
	}
	if req.Phone != "" {
		m.Phone = req.Phone
	}
	if req.CommissionRate != "" {
		rate, err := parseOptionalRate(req.CommissionRate)
		if err != nil {
			return nil, err
		}
		m.CommissionRate = rate
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionUpdateManicurist, m.ID.String(), m.Name, req)

	return toManicuristResponse(m), nil
}

func (s *manicuristService) DeleteManicurist(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID) error {
	m, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionUpdateManicurist, id.String(), m.Name, map[string]string{"deleted_id": id.String()})
	return nil
}
