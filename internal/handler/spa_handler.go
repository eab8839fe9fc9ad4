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

type SpaHandler struct {
	spaService service.SpaService
	guard      *guard.Guard
}

func NewSpaHandler(spaService service.SpaService, g *guard.Guard) *SpaHandler {
	return &SpaHandler{spaService: spaService, guard: g}
}

func (h *SpaHandler) RegisterRoutes(router *gin.RouterGroup) {
	spas := router.Group("/api/spas")
	{
		spas.POST("", middleware.RequireRole(model.RoleSuperAdmin), h.CreateSpa)
		spas.GET("", middleware.RequireRole(model.RoleSuperAdmin), h.ListSpas)
		spas.GET("/:id", middleware.RequireAuth(), h.GetSpa)
		spas.PUT("/:id", middleware.RequireRole(model.RoleSpaAdmin), h.UpdateSpa)
	}
}

// CreateSpa provisions a new tenant
// @Summary      Create spa
// @Description  Creates a new spa tenant with its billing rates
// @Tags         spas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateSpaRequest  true  "Create Spa Payload"
// @Success      201      {object}  response.Response{data=service.SpaResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/spas [post]
func (h *SpaHandler) CreateSpa(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req service.CreateSpaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	spa, err := h.spaService.CreateSpa(c.Request.Context(), ident, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, spa))
}

// ListSpas lists all tenants (super admin only)
// @Summary      List spas
// @Tags         spas
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/spas [get]
func (h *SpaHandler) ListSpas(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	params := pagination.Parse(c)
	spas, total, err := h.spaService.ListSpas(c.Request.Context(), ident, params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("spas", spas, total)))
}

// GetSpa fetches one spa, scoped to the caller's tenant
// @Summary      Get spa by ID
// @Tags         spas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Spa ID"
// @Success      200  {object}  response.Response{data=service.SpaResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/spas/{id} [get]
func (h *SpaHandler) GetSpa(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.guard.AssertUserSpaAccess(c.Request.Context(), ident, id); err != nil {
		fail(c, err)
		return
	}

	spa, err := h.spaService.GetSpa(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, spa))
}

// UpdateSpa changes tenant settings (name, rates, status)
// @Summary      Update spa
// @Tags         spas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Spa ID"
// @Param        payload  body      service.UpdateSpaRequest  true  "Update Spa Payload"
// @Success      200      {object}  response.Response{data=service.SpaResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/spas/{id} [put]
func (h *SpaHandler) UpdateSpa(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.guard.AssertUserSpaAccess(c.Request.Context(), ident, id); err != nil {
		fail(c, err)
		return
	}

	var req service.UpdateSpaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	spa, err := h.spaService.UpdateSpa(c.Request.Context(), ident, id, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, spa))
}
