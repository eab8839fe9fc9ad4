package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateClientRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	DocumentNumber string `json:"document_number"`
	BranchID       string `json:"branch_id"`
	Notes          string `json:"notes"`
}

type UpdateClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type ClientResponse struct {
	ID             string `json:"id"`
	SpaID          string `json:"spa_id"`
	BranchID       string `json:"branch_id,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DocumentNumber string `json:"document_number"`
	Notes          string `json:"notes"`
	CreatedAt      string `json:"created_at"`
}

type ClientService interface {
	CreateClient(ctx context.Context, spaID uuid.UUID, req CreateClientRequest) (*ClientResponse, error)
	GetClient(ctx context.Context, spaID, id uuid.UUID) (*ClientResponse, error)
	ListClients(ctx context.Context, spaID uuid.UUID, branchID *uuid.UUID, page, limit int) ([]ClientResponse, int64, error)
	UpdateClient(ctx context.Context, spaID, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error)
	DeleteClient(ctx context.Context, spaID, id uuid.UUID) error
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func toClientResponse(c *model.Client) *ClientResponse {
	res := &ClientResponse{
		ID:             c.ID.String(),
		SpaID:          c.SpaID.String(),
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		DocumentNumber: c.DocumentNumber,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
	if c.BranchID != nil {
		res.BranchID = c.BranchID.String()
	}
	return res
}

func (s *clientService) getScoped(ctx context.Context, spaID, id uuid.UUID) (*model.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, apperr.Internal(err)
	}
	if client.SpaID != spaID {
		return nil, apperr.NotFound("client not found")
	}
	return client, nil
}

func (s *clientService) CreateClient(ctx context.Context, spaID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	if req.DocumentNumber != "" {
		if _, err := s.repo.GetByDocument(ctx, spaID, req.DocumentNumber); err == nil {
			return nil, apperr.Conflict("document number already registered")
		}
	}

	client := &model.Client{
		SpaID:          spaID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		DocumentNumber: req.DocumentNumber,
		Notes:          req.Notes,
	}
	if req.BranchID != "" {
		branchID, err := uuid.Parse(req.BranchID)
		if err != nil {
			return nil, apperr.Validation("invalid branch_id", apperr.FieldError{Field: "branch_id", Message: "must be a UUID"})
		}
		client.BranchID = &branchID
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, apperr.Internal(err)
	}

	return toClientResponse(client), nil
}

func (s *clientService) GetClient(ctx context.Context, spaID, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

func (s *clientService) ListClients(ctx context.Context, spaID uuid.UUID, branchID *uuid.UUID, page, limit int) ([]ClientResponse, int64, error) {
	clients, total, err := s.repo.ListBySpa(ctx, spaID, branchID, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	res := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		res = append(res, *toClientResponse(&clients[i]))
	}
	return res, total, nil
}

func (s *clientService) UpdateClient(ctx context.Context, spaID, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		client.Name = req.Name
	}
	if req.Email != "" {
		client.Email = req.Email
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	if req.Notes != "" {
		client.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, apperr.Internal(err)
	}

	return toClientResponse(client), nil
}

func (s *clientService) DeleteClient(ctx context.Context, spaID, id uuid.UUID) error {
	if _, err := s.getScoped(ctx, spaID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
