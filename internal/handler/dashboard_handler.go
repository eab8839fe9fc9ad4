package handler

import (
	"net/http"
	"time"

	"backend/internal/guard"
	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	guard            *guard.Guard
}

func NewDashboardHandler(dashboardService service.DashboardService, g *guard.Guard) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, guard: g}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/api/dashboard")
	dashboard.Use(middleware.RequireAuth())
	{
		dashboard.GET("/stats", h.GetStats)
	}
}

// GetStats handles GET /api/dashboard/stats
// @Summary      Dashboard statistics
// @Description  Aggregates appointment counts, revenue, commissions and top rankings for a date range
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id     query     string  false  "Spa ID (defaults to caller's spa)"
// @Param        branch_id  query     string  false  "Branch ID filter"
// @Param        start_date query     string  false  "Start date (YYYY-MM-DD, default 30 days ago)"
// @Param        end_date   query     string  false  "End date (YYYY-MM-DD, default today)"
// @Success      200        {object}  response.Response{data=model.DashboardStats}
// @Failure      403        {object}  response.Response
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
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
	}

	start, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}

	now := time.Now()
	endDate := now
	if end != nil {
		endDate = end.Add(24*time.Hour - time.Nanosecond)
	}
	startDate := now.AddDate(0, 0, -30)
	if start != nil {
		startDate = *start
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), ident, spaID, branchID, startDate, endDate)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
