package handler

import (
	"net/http"
	"time"

	"backend/internal/guard"
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/pkg/apperr"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentService service.AppointmentBookingService
	guard              *guard.Guard
}

func NewAppointmentHandler(appointmentService service.AppointmentBookingService, g *guard.Guard) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService, guard: g}
}

func (h *AppointmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	appointments := router.Group("/api/appointments")
	appointments.Use(middleware.RequireAuth())
	{
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("", middleware.RequireRole(model.RoleBranchAdmin, model.RoleSpaAdmin, model.RoleManicurist), h.CreateAppointment)
		appointments.POST("/:id/complete", middleware.RequireRole(model.RoleBranchAdmin, model.RoleSpaAdmin, model.RoleManicurist), h.CompleteAppointment)
		appointments.POST("/:id/cancel", middleware.RequireRole(model.RoleBranchAdmin, model.RoleSpaAdmin), h.CancelAppointment)
	}
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		fail(c, apperr.Validation("invalid "+name, apperr.FieldError{Field: name, Message: "must be YYYY-MM-DD"}))
		return nil, false
	}
	return &t, true
}

// CreateAppointment handles POST /api/appointments
// @Summary      Book appointment
// @Description  Books an appointment with one or more catalog services; prices are captured at booking time
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id   query     string                            false  "Spa ID (defaults to caller's spa)"
// @Param        payload  body      service.CreateAppointmentRequest  true   "Create Appointment Payload"
// @Success      201      {object}  response.Response{data=service.AppointmentResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	spaID, ok := resolveSpaID(c, ident)
	if !ok {
		return
	}
	if err := h.guard.AssertUserSpaAccess(c.Request.Context(), ident, spaID); err != nil {
		fail(c, err)
		return
	}

	var req service.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		fail(c, apperr.Validation("invalid branch_id", apperr.FieldError{Field: "branch_id", Message: "must be a UUID"}))
		return
	}
	if err := h.guard.RequireBranchAccess(c.Request.Context(), ident, spaID, branchID); err != nil {
		fail(c, err)
		return
	}

	appt, err := h.appointmentService.CreateAppointment(c.Request.Context(), ident, spaID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, appt))
}

// ListAppointments handles GET /api/appointments with filters
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id        query     string  false  "Spa ID (defaults to caller's spa)"
// @Param        branch_id     query     string  false  "Branch ID filter"
// @Param        manicurist_id query     string  false  "Manicurist ID filter"
// @Param        client_id     query     string  false  "Client ID filter"
// @Param        status        query     string  false  "Status filter (SCHEDULED, COMPLETED, CANCELLED, NO_SHOW)"
// @Param        from          query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to            query     string  false  "End date (YYYY-MM-DD)"
// @Param        page          query     int     false  "Page number (default 1)"
// @Param        limit         query     int     false  "Number of items per page (default 20)"
// @Success      200           {object}  response.Response{data=object}
// @Router       /api/appointments [get]
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	spaID, ok := resolveSpaID(c, ident)
	if !ok {
		return
	}
	if err := h.guard.AssertUserSpaAccess(c.Request.Context(), ident, spaID); err != nil {
		fail(c, err)
		return
	}

	branchID, ok := optionalUUIDQuery(c, "branch_id")
	if !ok {
		return
	}
	if branchID != nil {
		if err := h.guard.RequireBranchAccess(c.Request.Context(), ident, spaID, *branchID); err != nil {
			fail(c, err)
			return
		}
	} else if ident.BranchID != nil && (ident.IsBranchAdmin() || ident.IsManicurist()) {
		// Branch-scoped roles only see their own branch.
		branchID = ident.BranchID
	}

	manicuristID, ok := optionalUUIDQuery(c, "manicurist_id")
	if !ok {
		return
	}
	clientID, ok := optionalUUIDQuery(c, "client_id")
	if !ok {
		return
	}
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	filter := repository.AppointmentFilter{
		SpaID:        spaID,
		BranchID:     branchID,
		ManicuristID: manicuristID,
		ClientID:     clientID,
		Status:       c.Query("status"),
		From:         from,
		To:           to,
	}

	params := pagination.Parse(c)
	appointments, total, err := h.appointmentService.ListAppointments(c.Request.Context(), filter, params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("appointments", appointments, total)))
}

// GetAppointment handles GET /api/appointments/:id
// @Summary      Get appointment by ID
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  response.Response{data=service.AppointmentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	spaID, ok := resolveSpaID(c, ident)
	if !ok {
		return
	}
	if err := h.guard.AssertUserSpaAccess(c.Request.Context(), ident, spaID); err != nil {
		fail(c, err)
		return
	}

	appt, err := h.appointmentService.GetAppointment(c.Request.Context(), spaID, id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, appt))
}

// CompleteAppointment handles POST /api/appointments/:id/complete
// @Summary      Complete appointment
// @Description  Marks a scheduled appointment as completed, recording the payment and commission rows
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                              true  "Appointment ID"
// @Param        payload  body      service.CompleteAppointmentRequest  true  "Completion Payload"
// @Success      200      {object}  response.Response{data=service.AppointmentResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/appointments/{id}/complete [post]
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	spaID, ok := resolveSpaID(c, ident)
	if !ok {
		return
	}
	if err := h.guard.AssertUserSpaAccess(c.Request.Context(), ident, spaID); err != nil {
		fail(c, err)
		return
	}

	var req service.CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	appt, err := h.appointmentService.CompleteAppointment(c.Request.Context(), ident, spaID, id, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, appt))
}

// CancelAppointment handles POST /api/appointments/:id/cancel
// @Summary      Cancel appointment
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/appointments/{id}/cancel [post]
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	spaID, ok := resolveSpaID(c, ident)
	if !ok {
		return
	}
	if err := h.guard.AssertUserSpaAccess(c.Request.Context(), ident, spaID); err != nil {
		fail(c, err)
		return
	}

	if err := h.appointmentService.CancelAppointment(c.Request.Context(), ident, spaID, id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Appointment cancelled"))
}
