package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend/internal/auth"
	"backend/internal/commission"
	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"
	"backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs
type AppointmentServiceRequest struct {
	SpaServiceID              string `json:"spa_service_id" binding:"required"`
	DiscountAmount            string `json:"discount_amount"` // decimal string
	DiscountAffectsCommission bool   `json:"discount_affects_commission"`
}

type CreateAppointmentRequest struct {
	BranchID     string                      `json:"branch_id" binding:"required"`
	ClientID     string                      `json:"client_id" binding:"required"`
	ManicuristID string                      `json:"manicurist_id" binding:"required"`
	ScheduledAt  string                      `json:"scheduled_at" binding:"required"` // RFC3339
	Services     []AppointmentServiceRequest `json:"services" binding:"required,min=1,dive"`
	Notes        string                      `json:"notes"`
}

type CompleteAppointmentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=CASH CARD TRANSFER"`
}

type AppointmentResponse struct {
	ID           string `json:"id"`
	SpaID        string `json:"spa_id"`
	BranchID     string `json:"branch_id"`
	ClientID     string `json:"client_id"`
	ManicuristID string `json:"manicurist_id"`
	ScheduledAt  string `json:"scheduled_at"`
	Status       string `json:"status"`
	Total        string `json:"total"`
	Notes        string `json:"notes"`
	Services     []AppointmentLineResponse `json:"services,omitempty"`
}

type AppointmentLineResponse struct {
	ID             string `json:"id"`
	SpaServiceID   string `json:"spa_service_id"`
	Price          string `json:"price"`
	KitCost        string `json:"kit_cost"`
	DiscountAmount string `json:"discount_amount"`
}

// Websocket payload broadcast to connected dashboards
type AppointmentEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

type AppointmentBookingService interface {
	CreateAppointment(ctx context.Context, ident auth.Identity, spaID uuid.UUID, req CreateAppointmentRequest) (*AppointmentResponse, error)
	GetAppointment(ctx context.Context, spaID, id uuid.UUID) (*AppointmentResponse, error)
	ListAppointments(ctx context.Context, filter repository.AppointmentFilter, page, limit int) ([]AppointmentResponse, int64, error)
	CompleteAppointment(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID, req CompleteAppointmentRequest) (*AppointmentResponse, error)
	CancelAppointment(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID) error
}

type appointmentService struct {
	appointments repository.AppointmentRepository
	catalog      repository.CatalogRepository
	manicurists  repository.ManicuristRepository
	spas         repository.SpaRepository
	payments     repository.PaymentRepository
	commissions  repository.CommissionRepository
	txManager    repository.TransactionManager
	audit        AuditWriter
	hub          *ws.Hub
}

func NewAppointmentService(
	appointments repository.AppointmentRepository,
	catalog repository.CatalogRepository,
	manicurists repository.ManicuristRepository,
	spas repository.SpaRepository,
	payments repository.PaymentRepository,
	commissions repository.CommissionRepository,
	txManager repository.TransactionManager,
	audit AuditWriter,
	hub *ws.Hub,
) AppointmentBookingService {
	return &appointmentService{
		appointments: appointments,
		catalog:      catalog,
		manicurists:  manicurists,
		spas:         spas,
		payments:     payments,
		commissions:  commissions,
		txManager:    txManager,
		audit:        audit,
		hub:          hub,
	}
}

func toAppointmentResponse(a *model.Appointment) *AppointmentResponse {
	res := &AppointmentResponse{
		ID:           a.ID.String(),
		SpaID:        a.SpaID.String(),
		BranchID:     a.BranchID.String(),
		ClientID:     a.ClientID.String(),
		ManicuristID: a.ManicuristID.String(),
		ScheduledAt:  a.ScheduledAt.Format(time.RFC3339),
		Status:       a.Status,
		Total:        a.Total.StringFixed(2),
		Notes:        a.Notes,
	}
	for _, line := range a.Services {
		res.Services = append(res.Services, AppointmentLineResponse{
			ID:             line.ID.String(),
			SpaServiceID:   line.SpaServiceID.String(),
			Price:          line.Price.StringFixed(2),
			KitCost:        line.KitCost.StringFixed(2),
			DiscountAmount: line.DiscountAmount.StringFixed(2),
		})
	}
	return res
}

func (s *appointmentService) getScoped(ctx context.Context, spaID, id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("appointment not found")
		}
		return nil, apperr.Internal(err)
	}
	if appt.SpaID != spaID {
		return nil, apperr.NotFound("appointment not found")
	}
	return appt, nil
}

// CreateAppointment books an appointment and its service lines in one
// transaction: either the whole booking lands or none of it does.
func (s *appointmentService) CreateAppointment(ctx context.Context, ident auth.Identity, spaID uuid.UUID, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, apperr.Validation("invalid branch_id", apperr.FieldError{Field: "branch_id", Message: "must be a UUID"})
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, apperr.Validation("invalid client_id", apperr.FieldError{Field: "client_id", Message: "must be a UUID"})
	}
	manicuristID, err := uuid.Parse(req.ManicuristID)
	if err != nil {
		return nil, apperr.Validation("invalid manicurist_id", apperr.FieldError{Field: "manicurist_id", Message: "must be a UUID"})
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, apperr.Validation("invalid scheduled_at", apperr.FieldError{Field: "scheduled_at", Message: "expected RFC3339"})
	}

	manicurist, err := s.manicurists.GetByID(ctx, manicuristID)
	if err != nil || manicurist.SpaID != spaID {
		return nil, apperr.NotFound("manicurist not found")
	}
	if manicurist.BranchID != branchID {
		return nil, apperr.Validation("manicurist does not work at this branch",
			apperr.FieldError{Field: "manicurist_id", Message: "assigned to a different branch"})
	}

	appt := &model.Appointment{
		SpaID:        spaID,
		BranchID:     branchID,
		ClientID:     clientID,
		ManicuristID: manicuristID,
		ScheduledAt:  scheduledAt,
		Status:       model.AppointmentScheduled,
		Notes:        req.Notes,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.appointments.Create(txCtx, appt); err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		total := decimal.Zero
		for _, lineReq := range req.Services {
			svcID, err := uuid.Parse(lineReq.SpaServiceID)
			if err != nil {
				return apperr.Validation("invalid spa_service_id",
					apperr.FieldError{Field: "spa_service_id", Message: "must be a UUID"})
			}

			svc, err := s.catalog.GetByID(txCtx, svcID)
			if err != nil || svc.SpaID != spaID {
				return apperr.NotFound("service not found")
			}

			discount := decimal.Zero
			if lineReq.DiscountAmount != "" {
				if discount, err = parseAmount(lineReq.DiscountAmount, "discount_amount"); err != nil {
					return err
				}
			}

			line := &model.AppointmentService{
				AppointmentID:             appt.ID,
				SpaServiceID:              svc.ID,
				Price:                     svc.Price,
				KitCost:                   svc.KitCost,
				DiscountAmount:            discount,
				DiscountAffectsCommission: lineReq.DiscountAffectsCommission,
			}
			if err := s.appointments.CreateServiceLine(txCtx, line); err != nil {
				return fmt.Errorf("failed to create appointment service: %w", err)
			}
			appt.Services = append(appt.Services, *line)
			total = total.Add(svc.Price).Add(svc.KitCost).Sub(discount)
		}

		if total.IsNegative() {
			total = decimal.Zero
		}
		appt.Total = total
		if err := s.appointments.Update(txCtx, appt); err != nil {
			return fmt.Errorf("failed to update appointment total: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.From(err)
	}

	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionBookAppointment, appt.ID.String(), appt.Status, req)
	s.broadcast("appointment.created", appt)

	return toAppointmentResponse(appt), nil
}

func (s *appointmentService) GetAppointment(ctx context.Context, spaID, id uuid.UUID) (*AppointmentResponse, error) {
	appt, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponse(appt), nil
}

func (s *appointmentService) ListAppointments(ctx context.Context, filter repository.AppointmentFilter, page, limit int) ([]AppointmentResponse, int64, error) {
	appts, total, err := s.appointments.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	res := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		res = append(res, *toAppointmentResponse(&appts[i]))
	}
	return res, total, nil
}

// CompleteAppointment settles a visit: per service line it runs the
// commission breakdown with the spa's rates (manicurist override wins) and
// writes the Payment and Commission rows together with the status flip in a
// single transaction.
func (s *appointmentService) CompleteAppointment(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID, req CompleteAppointmentRequest) (*AppointmentResponse, error) {
	appt, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != model.AppointmentScheduled {
		return nil, apperr.Conflict("appointment is not in SCHEDULED state")
	}

	spa, err := s.spas.GetByID(ctx, spaID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	manicurist, err := s.manicurists.GetByID(ctx, appt.ManicuristID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	commissionRate := spa.CommissionRate
	if manicurist.CommissionRate != nil {
		commissionRate = *manicurist.CommissionRate
	}

	now := time.Now()

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		subtotal := decimal.Zero
		taxTotal := decimal.Zero
		discountTotal := decimal.Zero
		feeTotal := decimal.Zero
		paidTotal := decimal.Zero

		for i := range appt.Services {
			line := &appt.Services[i]

			breakdown := commission.Calculate(commission.Input{
				ServicePrice:              line.Price,
				KitCost:                   line.KitCost,
				TaxRate:                   spa.TaxRate,
				CommissionRate:            commissionRate,
				DiscountAmount:            line.DiscountAmount,
				DiscountAffectsCommission: line.DiscountAffectsCommission,
				TransactionFeeRate:        spa.TransactionFeeRate,
			})

			row := &model.Commission{
				SpaID:                spaID,
				BranchID:             appt.BranchID,
				ManicuristID:         appt.ManicuristID,
				AppointmentID:        appt.ID,
				AppointmentServiceID: line.ID,
				Rate:                 commissionRate,
				Base:                 breakdown.CommissionBase,
				Amount:               breakdown.ManicuristEarnings,
				SpaNet:               breakdown.SpaNetEarnings,
				EarnedAt:             now,
			}
			if err := s.commissions.Create(txCtx, row); err != nil {
				return fmt.Errorf("failed to create commission: %w", err)
			}

			subtotal = subtotal.Add(line.Price).Add(line.KitCost)
			taxTotal = taxTotal.Add(breakdown.GovernmentTax)
			discountTotal = discountTotal.Add(line.DiscountAmount)
			feeTotal = feeTotal.Add(breakdown.TransactionFee)
			paidTotal = paidTotal.Add(breakdown.FinalTotal)
		}

		payment := &model.Payment{
			SpaID:          spaID,
			BranchID:       appt.BranchID,
			AppointmentID:  appt.ID,
			Method:         req.PaymentMethod,
			Subtotal:       subtotal,
			TaxAmount:      taxTotal,
			DiscountAmount: discountTotal,
			TransactionFee: feeTotal,
			Total:          paidTotal,
			PaidAt:         now,
		}
		if err := s.payments.Create(txCtx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		appt.Status = model.AppointmentCompleted
		appt.Total = paidTotal
		if err := s.appointments.Update(txCtx, appt); err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.From(err)
	}

	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionCompleteVisit, appt.ID.String(), appt.Status, req)
	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionRecordPayment, appt.ID.String(), req.PaymentMethod, nil)
	s.broadcast("appointment.completed", appt)

	return toAppointmentResponse(appt), nil
}

func (s *appointmentService) CancelAppointment(ctx context.Context, ident auth.Identity, spaID, id uuid.UUID) error {
	appt, err := s.getScoped(ctx, spaID, id)
	if err != nil {
		return err
	}
	if appt.Status != model.AppointmentScheduled {
		return apperr.Conflict("only SCHEDULED appointments can be cancelled")
	}

	appt.Status = model.AppointmentCancelled
	if err := s.appointments.Update(ctx, appt); err != nil {
		return apperr.Internal(err)
	}

	s.audit.Write(ctx, &spaID, &ident.UserID, model.ActionCancelVisit, appt.ID.String(), appt.Status, nil)
	s.broadcast("appointment.cancelled", appt)

	return nil
}

func (s *appointmentService) broadcast(event string, appt *model.Appointment) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(AppointmentEvent{
		Event: event,
		Data: map[string]interface{}{
			"appointment_id": appt.ID.String(),
			"spa_id":         appt.SpaID.String(),
			"branch_id":      appt.BranchID.String(),
			"status":         appt.Status,
			"scheduled_at":   appt.ScheduledAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		return
	}
	spaID := appt.SpaID
	s.hub.Broadcast <- ws.Message{SpaID: &spaID, Payload: payload}
}
