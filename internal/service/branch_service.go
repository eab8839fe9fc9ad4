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
	"gorm.io/gorm"
)

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateBranchRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"is_active"`
}

type BranchResponse struct {
	ID        string `json:"id"`
	SpaID     string `json:"spa_id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type BranchService interface {
	CreateBranch(ctx context.Context, ident auth.Identity, spaID uuid.UUID, req CreateBranchRequest) (*BranchResponse, error)
	GetBranch(ctx context.Context, spaID, id uuid.UUID) (*BranchResponse, error)
	ListBranches(ctx context.Context, spaID uuid.UUID, page, limit int) ([]BranchResponse, int64, error)
	UpdateBranch(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error)
	DeleteBranch(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID) error
}

type branchService struct {
	repo  repository.BranchRepository
	audit AuditWriter
}

func NewBranchService(repo repository.BranchRepository, audit AuditWriter) BranchService {
	return &branchService{repo: repo, audit: audit}
}

func toBranchResponse(b *model.Branch) *BranchResponse {
	return &BranchResponse{
		ID:        b.ID.String(),
		SpaID:     b.SpaID.String(),
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

// getScoped loads a branch and hides cross-tenant rows behind NotFound.
func (s *branchService) getScoped(ctx context.Context, spaID, id uuid.UUID) (*model.Branch, error) {
	branch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("branch not found")
		}
		return nil, apperr.Internal(err)
	}
	if branch.SpaID != spaID {
		return nil, apperr.NotFound("branch not found")
	}
	return branch, nil
}

func (s *branchService) CreateBranch(ctx context.Context, ident auth.Identity, spaID uuid.UUID, req CreateBranchRequest) (*BranchResponse, error) {
	if !auth.CanManageBranches(ident) {
		return nil, apperr.Forbidden("only spa admins may manage branches")
	}

	branch := &model.Branch{
		SpaID:    spaID,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, branch); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionCreateBranch, branch.ID.String(), branch.Name, req)

	return toBranchResponse(branch), nil
}

func (s *branchService) GetBranch(ctx context.Context, spaID, id uuid.UUID) (*BranchResponse, error) {
	branch, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

func (s *branchService) ListBranches(ctx context.Context, spaID uuid.UUID, page, limit int) ([]BranchResponse, int64, error) {
	branches, total, err := s.repo.ListBySpa(ctx, spaID, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	res := make([]BranchResponse, 0, len(branches))
	for i := range branches {
		res = append(res, *toBranchResponse(&branches[i]))
	}
	return res, total, nil
}

func (s *branchService) UpdateBranch(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	if !auth.CanManageBranches(ident) {
		return nil, apperr.Forbidden("only spa admins may manage branches")
	}

	branch, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		branch.Name = req.Name
	}
	if req.Address != "" {
		branch.Address = req.Address
	}
	if req.Phone != "" {
		branch.Phone = req.Phone
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, branch); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionUpdateBranch, branch.ID.String(), branch.Name, req)

	return toBranchResponse(branch), nil
}

func (s *branchService) DeleteBranch(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID) error {
	if !auth.CanManageBranches(ident) {
		return apperr.Forbidden("only spa admins may manage branches")
	}

	branch, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionDeleteBranch, id.String(), branch.Name, nil)

	return nil
}
