package service

import (
	"context"
	"time"

	"backend/internal/auth"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
)

type CommissionResponse struct {
	ID            string `json:"id"`
	ManicuristID  string `json:"manicurist_id"`
	AppointmentID string `json:"appointment_id"`
	Rate          string `json:"rate"`
	Base          string `json:"base"`
	Amount        string `json:"amount"`
	SpaNet        string `json:"spa_net"`
	EarnedAt      string `json:"earned_at"`
}

type CommissionSummaryResponse struct {
	ManicuristID string  `json:"manicurist_id"`
	TotalEarned  float64 `json:"total_earned"`
	From         string  `json:"from,omitempty"`
	To           string  `json:"to,omitempty"`
}

type CommissionQueryService interface {
	ListCommissions(ctx context.Context, ident auth.Identity, filter repository.CommissionFilter, page, limit int) ([]CommissionResponse, int64, error)
	SummarizeManicurist(ctx context.Context, ident auth.Identity, filter repository.CommissionFilter) (*CommissionSummaryResponse, error)
}

type commissionService struct {
	repo        repository.CommissionRepository
	manicurists repository.ManicuristRepository
}

func NewCommissionService(repo repository.CommissionRepository, manicurists repository.ManicuristRepository) CommissionQueryService {
	return &commissionService{repo: repo, manicurists: manicurists}
}

// scopeFilter narrows the filter to what the caller may see: manicurists only
// their own rows, branch admins only their branch.
func (s *commissionService) scopeFilter(ctx context.Context, ident auth.Identity, filter repository.CommissionFilter) (repository.CommissionFilter, error) {
	if ident.IsSuperAdmin || ident.IsSpaAdmin() {
		return filter, nil
	}

	if ident.IsBranchAdmin() {
		if ident.BranchID == nil {
			return filter, apperr.Forbidden("no branch assignment")
		}
		filter.BranchID = ident.BranchID
		return filter, nil
	}

	if ident.IsManicurist() {
		// Resolve the manicurist profile linked to this login
		if filter.ManicuristID == nil {
			return filter, apperr.Forbidden("manicurist_id is required")
		}
		m, err := s.manicurists.GetByID(ctx, *filter.ManicuristID)
		if err != nil || m.UserID == nil || *m.UserID != ident.UserID {
			return filter, apperr.Forbidden("commissions of other manicurists are not visible")
		}
		return filter, nil
	}

	return filter, apperr.Forbidden("insufficient role")
}

func (s *commissionService) ListCommissions(ctx context.Context, ident auth.Identity, filter repository.CommissionFilter, page, limit int) ([]CommissionResponse, int64, error) {
	filter, err := s.scopeFilter(ctx, ident, filter)
	if err != nil {
		return nil, 0, err
	}

	rows, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	res := make([]CommissionResponse, 0, len(rows))
	for _, row := range rows {
		res = append(res, toCommissionResponse(row))
	}
	return res, total, nil
}

func (s *commissionService) SummarizeManicurist(ctx context.Context, ident auth.Identity, filter repository.CommissionFilter) (*CommissionSummaryResponse, error) {
	if filter.ManicuristID == nil {
		return nil, apperr.Validation("manicurist_id is required",
			apperr.FieldError{Field: "manicurist_id", Message: "required"})
	}

	filter, err := s.scopeFilter(ctx, ident, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.SumByManicurist(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	res := &CommissionSummaryResponse{
		ManicuristID: filter.ManicuristID.String(),
		TotalEarned:  total,
	}
	if filter.From != nil {
		res.From = filter.From.Format(time.RFC3339)
	}
	if filter.To != nil {
		res.To = filter.To.Format(time.RFC3339)
	}
	return res, nil
}

func toCommissionResponse(row model.Commission) CommissionResponse {
	return CommissionResponse{
		ID:            row.ID.String(),
		ManicuristID:  row.ManicuristID.String(),
		AppointmentID: row.AppointmentID.String(),
		Rate:          row.Rate.StringFixed(4),
		Base:          row.Base.StringFixed(2),
		Amount:        row.Amount.StringFixed(2),
		SpaNet:        row.SpaNet.StringFixed(2),
		EarnedAt:      row.EarnedAt.Format(time.RFC3339),
	}
}
