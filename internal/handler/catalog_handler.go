package handler

import (
	"net/http"

	"backend/internal/guard"
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	guard          *guard.Guard
}

func NewCatalogHandler(catalogService service.CatalogService, g *guard.Guard) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, guard: g}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	services := router.Group("/api/services")
	{
		services.GET("", middleware.RequireAuth(), h.ListServices)
		services.GET("/:id", middleware.RequireAuth(), h.GetService)
		services.POST("", middleware.RequireRole(model.RoleSpaAdmin), h.CreateService)
		services.PUT("/:id", middleware.RequireRole(model.RoleSpaAdmin), h.UpdateService)
		services.DELETE("/:id", middleware.RequireRole(model.RoleSpaAdmin), h.DeleteService)
	}
}

// CreateService handles POST /api/services
// @Summary      Create catalog service
// @Description  Adds a service to the spa catalog; kit cost defaults by service type when omitted
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id   query     string                        false  "Spa ID (defaults to caller's spa)"
// @Param        payload  body      service.CreateServiceRequest  true   "Create Service Payload"
// @Success      201      {object}  response.Response{data=service.ServiceResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
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

	var req service.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), ident, spaID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, svc))
}

// ListServices handles GET /api/services
// @Summary      List catalog services
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id query     string  false  "Spa ID (defaults to caller's spa)"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
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

	params := pagination.Parse(c)
	services, total, err := h.catalogService.ListServices(c.Request.Context(), spaID, params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("services", services, total)))
}

// GetService handles GET /api/services/:id
// @Summary      Get catalog service by ID
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  response.Response{data=service.ServiceResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
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

	svc, err := h.catalogService.GetService(c.Request.Context(), spaID, id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, svc))
}

// UpdateService handles PUT /api/services/:id
// @Summary      Update catalog service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Service ID"
// @Param        payload  body      service.UpdateServiceRequest  true  "Update Service Payload"
// @Success      200      {object}  response.Response{data=service.ServiceResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/services/{id} [put]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
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

	var req service.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), ident, spaID, id, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, svc))
}

// DeleteService handles DELETE /api/services/:id
// @Summary      Delete catalog service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
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

	if err := h.catalogService.DeleteService(c.Request.Context(), ident, spaID, id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Service deleted successfully"))
}
