package model

import (
	"time"
)

// DashboardStats aggregates appointment and revenue metrics for one tenant
// scope (whole spa, or a single branch for branch-scoped roles).
type DashboardStats struct {
	TotalAppointments     int              `json:"total_appointments"`
	CompletedAppointments int              `json:"completed_appointments"`
	CancelledAppointments int              `json:"cancelled_appointments"`
	TotalRevenue          float64          `json:"total_revenue"`
	TotalCommissions      float64          `json:"total_commissions"`
	SpaNetEarnings        float64          `json:"spa_net_earnings"`
	TopServices           []ServiceRanking `json:"top_services"`
	TopManicurists        []StaffRanking   `json:"top_manicurists"`
	TimeRangeStartDate    time.Time        `json:"time_range_start_date"`
	TimeRangeEndDate      time.Time        `json:"time_range_end_date"`
}

// ServiceRanking represents a catalog service ranked by completed volume
type ServiceRanking struct {
	ServiceID    string  `json:"service_id"`
	ServiceName  string  `json:"service_name"`
	ServiceType  string  `json:"service_type"`
	TimesBooked  int     `json:"times_booked"`
	TotalRevenue float64 `json:"total_revenue"`
}

// StaffRanking represents a manicurist ranked by accumulated earnings
type StaffRanking struct {
	ManicuristID   string  `json:"manicurist_id"`
	ManicuristName string  `json:"manicurist_name"`
	Appointments   int     `json:"appointments"`
	TotalEarnings  float64 `json:"total_earnings"`
}
