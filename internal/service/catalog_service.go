package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/auth"
	"backend/internal/commission"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	ServiceType string `json:"service_type" binding:"required,oneof=MANICURE PEDICURE NAIL_ART GEL_POLISH ACRYLICS"`
	Price       string `json:"price" binding:"required"` // decimal string
	KitCost     string `json:"kit_cost"`                 // decimal string; empty = type default
	DurationMin int    `json:"duration_min"`
}

type UpdateServiceRequest struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	KitCost     string `json:"kit_cost"`
	DurationMin int    `json:"duration_min"`
	IsActive    *bool  `json:"is_active"`
}

type ServiceResponse struct {
	ID          string `json:"id"`
	SpaID       string `json:"spa_id"`
	Name        string `json:"name"`
	ServiceType string `json:"service_type"`
	Price       string `json:"price"`
	KitCost     string `json:"kit_cost"`
	DurationMin int    `json:"duration_min"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

type CatalogService interface {
	CreateService(ctx context.Context, ident auth.Identity, spaID uuid.UUID, req CreateServiceRequest) (*ServiceResponse, error)
	GetService(ctx context.Context, spaID, id uuid.UUID) (*ServiceResponse, error)
	ListServices(ctx context.Context, spaID uuid.UUID, page, limit int) ([]ServiceResponse, int64, error)
	UpdateService(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error)
	DeleteService(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID) error
}

type catalogService struct {
	repo  repository.CatalogRepository
	audit AuditWriter
}

func NewCatalogService(repo repository.CatalogRepository, audit AuditWriter) CatalogService {
	return &catalogService{repo: repo, audit: audit}
}

func toServiceResponse(svc *model.SpaService) *ServiceResponse {
	return &ServiceResponse{
		ID:          svc.ID.String(),
		SpaID:       svc.SpaID.String(),
		Name:        svc.Name,
		ServiceType: svc.ServiceType,
		Price:       svc.Price.StringFixed(2),
		KitCost:     svc.KitCost.StringFixed(2),
		DurationMin: svc.DurationMin,
		IsActive:    svc.IsActive,
		CreatedAt:   svc.CreatedAt.Format(time.RFC3339),
	}
}

func parseAmount(value, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, apperr.Validation("invalid "+field, apperr.FieldError{Field: field, Message: "must be a decimal string"})
	}
	if amount.IsNegative() {
		return decimal.Zero, apperr.Validation("invalid "+field, apperr.FieldError{Field: field, Message: "must not be negative"})
	}
	return amount, nil
}

func (s *catalogService) getScoped(ctx context.Context, spaID, id uuid.UUID) (*model.SpaService, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("service not found")
		}
		return nil, apperr.Internal(err)
	}
	if svc.SpaID != spaID {
		return nil, apperr.NotFound("service not found")
	}
	return svc, nil
}

func (s *catalogService) CreateService(ctx context.Context, ident auth.Identity, spaID uuid.UUID, req CreateServiceRequest) (*ServiceResponse, error) {
	price, err := parseAmount(req.Price, "price")
	if err != nil {
		return nil, err
	}

	// Kit cost falls back to the service-type table when not provided
	kitCost := commission.DefaultKitCost(req.ServiceType)
	if req.KitCost != "" {
		if kitCost, err = parseAmount(req.KitCost, "kit_cost"); err != nil {
			return nil, err
		}
	}

	duration := req.DurationMin
	if duration <= 0 {
		duration = 30
	}

	svc := &model.SpaService{
		SpaID:       spaID,
		Name:        req.Name,
		ServiceType: req.ServiceType,
		Price:       price,
		KitCost:     kitCost,
		DurationMin: duration,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionCreateService, svc.ID.String(), svc.Name, req)

	return toServiceResponse(svc), nil
}

func (s *catalogService) GetService(ctx context.Context, spaID, id uuid.UUID) (*ServiceResponse, error) {
	svc, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return nil, err
	}
	return toServiceResponse(svc), nil
}

func (s *catalogService) ListServices(ctx context.Context, spaID uuid.UUID, page, limit int) ([]ServiceResponse, int64, error) {
	services, total, err := s.repo.ListBySpa(ctx, spaID, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	res := make([]ServiceResponse, 0, len(services))
	for i := range services {
		res = append(res, *toServiceResponse(&services[i]))
	}
	return res, total, nil
}

func (s *catalogService) UpdateService(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	svc, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.Price != "" {
		if svc.Price, err = parseAmount(req.Price, "price"); err != nil {
			return nil, err
		}
	}
	if req.KitCost != "" {
		if svc.KitCost, err = parseAmount(req.KitCost, "kit_cost"); err != nil {
			return nil, err
		}
	}
	if req.DurationMin > 0 {
		svc.DurationMin = req.DurationMin
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionUpdateService, svc.ID.String(), svc.Name, req)

	return toServiceResponse(svc), nil
}

func (s *catalogService) DeleteService(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID) error {
	svc, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionDeleteService, id.String(), svc.Name, nil)
	return nil
}
