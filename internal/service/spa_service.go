package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"backend/internal/auth"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateSpaRequest struct {
	Name               string `json:"name" binding:"required"`
	Slug               string `json:"slug" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone"`
	TaxRate            string `json:"tax_rate"`             // decimal string, e.g. "0.18"
	TransactionFeeRate string `json:"transaction_fee_rate"` // decimal string
	CommissionRate     string `json:"commission_rate"`      // decimal string, default 0.5
}

type UpdateSpaRequest struct {
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	TaxRate            string `json:"tax_rate"`
	TransactionFeeRate string `json:"transaction_fee_rate"`
	CommissionRate     string `json:"commission_rate"`
	IsActive           *bool  `json:"is_active"`
}

type SpaResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Slug               string `json:"slug"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	TaxRate            string `json:"tax_rate"`
	TransactionFeeRate string `json:"transaction_fee_rate"`
	CommissionRate     string `json:"commission_rate"`
	IsActive           bool   `json:"is_active"`
	CreatedAt          string `json:"created_at"`
}

type SpaService interface {
	CreateSpa(ctx context.Context, ident auth.Identity, req CreateSpaRequest) (*SpaResponse, error)
	GetSpa(ctx context.Context, id uuid.UUID) (*SpaResponse, error)
	ListSpas(ctx context.Context, ident auth.Identity, page, limit int) ([]SpaResponse, int64, error)
	UpdateSpa(ctx context.Context, ident auth.Identity, id uuid.UUID, req UpdateSpaRequest) (*SpaResponse, error)
}

type spaService struct {
	repo  repository.SpaRepository
	audit AuditWriter
}

func NewSpaService(repo repository.SpaRepository, audit AuditWriter) SpaService {
	return &spaService{repo: repo, audit: audit}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func parseRate(value, field string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if value == "" {
		return fallback, nil
	}
	rate, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperr.Validation("invalid "+field, apperr.FieldError{Field: field, Message: "must be a decimal string"})
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, apperr.Validation("invalid "+field, apperr.FieldError{Field: field, Message: "must be between 0 and 1"})
	}
	return rate, nil
}

func toSpaResponse(spa *model.Spa) *SpaResponse {
	return &SpaResponse{
		ID:                 spa.ID.String(),
		Name:               spa.Name,
		Slug:               spa.Slug,
		Email:              spa.Email,
		Phone:              spa.Phone,
		TaxRate:            spa.TaxRate.StringFixed(4),
		TransactionFeeRate: spa.TransactionFeeRate.StringFixed(4),
		CommissionRate:     spa.CommissionRate.StringFixed(4),
		IsActive:           spa.IsActive,
		CreatedAt:          spa.CreatedAt.Format(time.RFC3339),
	}
}

func (s *spaService) CreateSpa(ctx context.Context, ident auth.Identity, req CreateSpaRequest) (*SpaResponse, error) {
	if !ident.IsSuperAdmin {
		return nil, apperr.Forbidden("only super admins may create spas")
	}

	if !slugPattern.MatchString(req.Slug) {
		return nil, apperr.Validation("invalid slug",
			apperr.FieldError{Field: "slug", Message: "lowercase letters, digits and single hyphens only"})
	}

	if _, err := s.repo.GetBySlug(ctx, req.Slug); err == nil {
		return nil, apperr.Conflict("slug already in use")
	}

	taxRate, err := parseRate(req.TaxRate, "tax_rate", decimal.Zero)
	if err != nil {
		return nil, err
	}
	feeRate, err := parseRate(req.TransactionFeeRate, "transaction_fee_rate", decimal.Zero)
	if err != nil {
		return nil, err
	}
	commissionRate, err := parseRate(req.CommissionRate, "commission_rate", decimal.NewFromFloat(0.5))
	if err != nil {
		return nil, err
	}

	spa := &model.Spa{
		Name:               req.Name,
		Slug:               req.Slug,
		Email:              req.Email,
		Phone:              req.Phone,
		TaxRate:            taxRate,
		TransactionFeeRate: feeRate,
		CommissionRate:     commissionRate,
		IsActive:           true,
	}

	if err := s.repo.Create(ctx, spa); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit.Write(ctx, &spa.ID, &ident.UserID, model.ActionCreateSpa, spa.ID.String(), spa.Name, req)

	return toSpaResponse(spa), nil
}

func (s *spaService) GetSpa(ctx context.Context, id uuid.UUID) (*SpaResponse, error) {
	spa, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("spa not found")
		}
		return nil, apperr.Internal(err)
	}
	return toSpaResponse(spa), nil
}

func (s *spaService) ListSpas(ctx context.Context, ident auth.Identity, page, limit int) ([]SpaResponse, int64, error) {
	if !ident.IsSuperAdmin {
		return nil, 0, apperr.Forbidden("only super admins may list spas")
	}

	spas, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	res := make([]SpaResponse, 0, len(spas))
	for i := range spas {
		res = append(res, *toSpaResponse(&spas[i]))
	}
	return res, total, nil
}

func (s *spaService) UpdateSpa(ctx context.Context, ident auth.Identity, id uuid.UUID, req UpdateSpaRequest) (*SpaResponse, error) {
	spa, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("spa not found")
		}
		return nil, apperr.Internal(err)
	}

	if req.Name != "" {
		spa.Name = req.Name
	}
	if req.Phone != "" {
		spa.Phone = req.Phone
	}
	if req.TaxRate != "" {
		if spa.TaxRate, err = parseRate(req.TaxRate, "tax_rate", spa.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.TransactionFeeRate != "" {
		if spa.TransactionFeeRate, err = parseRate(req.TransactionFeeRate, "transaction_fee_rate", spa.TransactionFeeRate); err != nil {
			return nil, err
		}
	}
	if req.CommissionRate != "" {
		if spa.CommissionRate, err = parseRate(req.CommissionRate, "commission_rate", spa.CommissionRate); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		// Deactivation is super-admin only; a spa never hard-deletes
		if !ident.IsSuperAdmin {
			return nil, apperr.Forbidden("only super admins may change spa status")
		}
		spa.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, spa); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit.Write(ctx, &spa.ID, &ident.UserID, model.ActionUpdateSpa, spa.ID.String(), spa.Name, req)

	return toSpaResponse(spa), nil
}
