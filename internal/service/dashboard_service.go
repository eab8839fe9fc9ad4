package service

import (
	"context"
	"time"

	"backend/internal/auth"
	"backend/internal/model"
	"backend/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DashboardService interface {
	GetStats(ctx context.Context, ident auth.Identity, spaID uuid.UUID, branchID *uuid.UUID, startDate, endDate time.Time) (model.DashboardStats, error)
}

type dashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardService{db: db}
}

// GetStats aggregates appointment and money metrics bounded by time. Branch
// scoped callers are pinned to their own branch regardless of the query.
func (s *dashboardService) GetStats(ctx context.Context, ident auth.Identity, spaID uuid.UUID, branchID *uuid.UUID, startDate, endDate time.Time) (model.DashboardStats, error) {
	var stats model.DashboardStats
	stats.TimeRangeStartDate = startDate
	stats.TimeRangeEndDate = endDate

	if !ident.IsSuperAdmin && !ident.IsSpaAdmin() {
		if ident.BranchID == nil {
			return stats, apperr.Forbidden("no branch assignment")
		}
		branchID = ident.BranchID
	}

	scoped := func(q *gorm.DB) *gorm.DB {
		q = q.Where("spa_id = ? AND scheduled_at >= ? AND scheduled_at <= ?", spaID, startDate, endDate)
		if branchID != nil {
			q = q.Where("branch_id = ?", *branchID)
		}
		return q
	}

	// Appointment counts per status
	var counts []struct {
		Status string
		N      int
	}
	scoped(s.db.WithContext(ctx).Model(&model.Appointment{})).
		Select("status, COUNT(*) as n").
		Group("status").
		Scan(&counts)
	for _, c := range counts {
		stats.TotalAppointments += c.N
		switch c.Status {
		case model.AppointmentCompleted:
			stats.CompletedAppointments = c.N
		case model.AppointmentCancelled:
			stats.CancelledAppointments = c.N
		}
	}

	// Revenue from payments
	var revenue struct {
		Value float64
	}
	paymentScope := s.db.WithContext(ctx).Table("payments").
		Where("spa_id = ? AND paid_at >= ? AND paid_at <= ?", spaID, startDate, endDate)
	if branchID != nil {
		paymentScope = paymentScope.Where("branch_id = ?", *branchID)
	}
	paymentScope.Select("COALESCE(SUM(total), 0) as value").Scan(&revenue)
	stats.TotalRevenue = revenue.Value

	// Commission totals
	var commissions struct {
		Earned float64
		SpaNet float64
	}
	commissionScope := s.db.WithContext(ctx).Table("commissions").
		Where("spa_id = ? AND earned_at >= ? AND earned_at <= ?", spaID, startDate, endDate)
	if branchID != nil {
		commissionScope = commissionScope.Where("branch_id = ?", *branchID)
	}
	commissionScope.Select("COALESCE(SUM(amount), 0) as earned, COALESCE(SUM(spa_net), 0) as spa_net").Scan(&commissions)
	stats.TotalCommissions = commissions.Earned
	stats.SpaNetEarnings = commissions.SpaNet

	// Top services by completed volume
	var topServices []model.ServiceRanking
	serviceScope := s.db.WithContext(ctx).Table("appointment_services").
		Select("spa_services.id as service_id, spa_services.name as service_name, spa_services.service_type as service_type, COUNT(*) as times_booked, SUM(appointment_services.price) as total_revenue").
		Joins("JOIN spa_services ON spa_services.id = appointment_services.spa_service_id").
		Joins("JOIN appointments ON appointments.id = appointment_services.appointment_id").
		Where("appointments.spa_id = ? AND appointments.status = ? AND appointments.scheduled_at >= ? AND appointments.scheduled_at <= ?",
			spaID, model.AppointmentCompleted, startDate, endDate)
	if branchID != nil {
		serviceScope = serviceScope.Where("appointments.branch_id = ?", *branchID)
	}
	serviceScope.
		Group("spa_services.id, spa_services.name, spa_services.service_type").
		Order("times_booked DESC").
		Limit(5).
		Scan(&topServices)
	stats.TopServices = topServices

	// Top manicurists by earnings
	var topStaff []model.StaffRanking
	staffScope := s.db.WithContext(ctx).Table("commissions").
		Select("manicurists.id as manicurist_id, manicurists.name as manicurist_name, COUNT(DISTINCT commissions.appointment_id) as appointments, SUM(commissions.amount) as total_earnings").
		Joins("JOIN manicurists ON manicurists.id = commissions.manicurist_id").
		Where("commissions.spa_id = ? AND commissions.earned_at >= ? AND commissions.earned_at <= ?", spaID, startDate, endDate)
	if branchID != nil {
		staffScope = staffScope.Where("commissions.branch_id = ?", *branchID)
	}
	staffScope.
		Group("manicurists.id, manicurists.name").
		Order("total_earnings DESC").
		Limit(5).
		Scan(&topStaff)
	stats.TopManicurists = topStaff

	return stats, nil
}
