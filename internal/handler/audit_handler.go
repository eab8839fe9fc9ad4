package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/api/audit-logs")
	audit.Use(middleware.RequireRole(model.RoleSpaAdmin))
	{
		audit.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs handles GET /api/audit-logs
// @Summary      List audit logs
// @Description  Lists audit entries; spa admins see their own tenant, super admins all tenants
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id query     string  false  "Spa ID filter (super admin only)"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	spaID, ok := optionalUUIDQuery(c, "spa_id")
	if !ok {
		return
	}

	params := pagination.Parse(c)
	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), ident, spaID, params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("audit_logs", logs, total)))
}
