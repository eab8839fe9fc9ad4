package handler

import (
	"net/http"

	"backend/internal/auth"
	"backend/internal/guard"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommissionHandler struct {
	commissionService service.CommissionQueryService
	guard             *guard.Guard
}

func NewCommissionHandler(commissionService service.CommissionQueryService, g *guard.Guard) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService, guard: g}
}

func (h *CommissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	commissions := router.Group("/api/commissions")
	commissions.Use(middleware.RequireAuth())
	{
		commissions.GET("", h.ListCommissions)
		commissions.GET("/summary", h.GetSummary)
	}
}

// buildFilter assembles the commission filter from query parameters. Role
// scoping happens in the service; the handler only checks tenant access.
func (h *CommissionHandler) buildFilter(c *gin.Context) (auth.Identity, repository.CommissionFilter, bool) {
	ident, ok := identity(c)
	if !ok {
		return auth.Identity{}, repository.CommissionFilter{}, false
	}
	spaID, ok := resolveSpaID(c, ident)
	if !ok {
		return ident, repository.CommissionFilter{}, false
	}
	if err := h.guard.AssertUserSpaAccess(c.Request.Context(), ident, spaID); err != nil {
		fail(c, err)
		return ident, repository.CommissionFilter{}, false
	}

	branchID, ok := optionalUUIDQuery(c, "branch_id")
	if !ok {
		return ident, repository.CommissionFilter{}, false
	}
	manicuristID, ok := optionalUUIDQuery(c, "manicurist_id")
	if !ok {
		return ident, repository.CommissionFilter{}, false
	}
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return ident, repository.CommissionFilter{}, false
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return ident, repository.CommissionFilter{}, false
	}

	return ident, repository.CommissionFilter{
		SpaID:        spaID,
		BranchID:     branchID,
		ManicuristID: manicuristID,
		From:         from,
		To:           to,
	}, true
}

// ListCommissions handles GET /api/commissions
// @Summary      List commissions
// @Description  Lists commission rows scoped by role: manicurists see their own, branch admins their branch
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id        query     string  false  "Spa ID (defaults to caller's spa)"
// @Param        branch_id     query     string  false  "Branch ID filter"
// @Param        manicurist_id query     string  false  "Manicurist ID filter"
// @Param        from          query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to            query     string  false  "End date (YYYY-MM-DD)"
// @Param        page          query     int     false  "Page number (default 1)"
// @Param        limit         query     int     false  "Number of items per page (default 20)"
// @Success      200           {object}  response.Response{data=object}
// @Router       /api/commissions [get]
func (h *CommissionHandler) ListCommissions(c *gin.Context) {
	ident, filter, ok := h.buildFilter(c)
	if !ok {
		return
	}

	params := pagination.Parse(c)
	commissions, total, err := h.commissionService.ListCommissions(c.Request.Context(), ident, filter, params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("commissions", commissions, total)))
}

// GetSummary handles GET /api/commissions/summary
// @Summary      Summarize manicurist earnings
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id        query     string  false  "Spa ID (defaults to caller's spa)"
// @Param        manicurist_id query     string  false  "Manicurist ID (defaults to caller when manicurist)"
// @Param        from          query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to            query     string  false  "End date (YYYY-MM-DD)"
// @Success      200           {object}  response.Response{data=service.CommissionSummaryResponse}
// @Router       /api/commissions/summary [get]
func (h *CommissionHandler) GetSummary(c *gin.Context) {
	ident, filter, ok := h.buildFilter(c)
	if !ok {
		return
	}

	summary, err := h.commissionService.SummarizeManicurist(c.Request.Context(), ident, filter)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
