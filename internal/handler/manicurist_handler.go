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

type ManicuristHandler struct {
	manicuristService service.ManicuristService
	guard             *guard.Guard
}

func NewManicuristHandler(manicuristService service.ManicuristService, g *guard.Guard) *ManicuristHandler {
	return &ManicuristHandler{manicuristService: manicuristService, guard: g}
}

func (h *ManicuristHandler) RegisterRoutes(router *gin.RouterGroup) {
	manicurists := router.Group("/api/manicurists")
	{
		manicurists.GET("", middleware.RequireAuth(), h.ListManicurists)
		manicurists.GET("/:id", middleware.RequireAuth(), h.GetManicurist)
		manicurists.POST("", middleware.RequireRole(model.RoleBranchAdmin, model.RoleSpaAdmin), h.CreateManicurist)
		manicurists.PUT("/:id", middleware.RequireRole(model.RoleBranchAdmin, model.RoleSpaAdmin), h.UpdateManicurist)
		manicurists.DELETE("/:id", middleware.RequireRole(model.RoleBranchAdmin, model.RoleSpaAdmin), h.DeleteManicurist)
	}
}

// CreateManicurist handles POST /api/manicurists
// @Summary      Create manicurist
// @Description  Registers a manicurist under a branch of the spa
// @Tags         manicurists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id   query     string                           false  "Spa ID (defaults to caller's spa)"
// @Param        payload  body      service.CreateManicuristRequest  true   "Create Manicurist Payload"
// @Success      201      {object}  response.Response{data=service.ManicuristResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/manicurists [post]
func (h *ManicuristHandler) CreateManicurist(c *gin.Context) {
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

	var req service.CreateManicuristRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	manicurist, err := h.manicuristService.CreateManicurist(c.Request.Context(), ident, spaID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, manicurist))
}

// ListManicurists handles GET /api/manicurists with an optional branch filter
// @Summary      List manicurists
// @Tags         manicurists
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id    query     string  false  "Spa ID (defaults to caller's spa)"
// @Param        branch_id query     string  false  "Branch ID filter"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 20)"
// @Success      200       {object}  response.Response{data=object}
// @Router       /api/manicurists [get]
func (h *ManicuristHandler) ListManicurists(c *gin.Context) {
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

	params := pagination.Parse(c)
	manicurists, total, err := h.manicuristService.ListManicurists(c.Request.Context(), spaID, branchID, params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("manicurists", manicurists, total)))
}

// GetManicurist handles GET /api/manicurists/:id
// @Summary      Get manicurist by ID
// @Tags         manicurists
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Manicurist ID"
// @Success      200  {object}  response.Response{data=service.ManicuristResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/manicurists/{id} [get]
func (h *ManicuristHandler) GetManicurist(c *gin.Context) {
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

	manicurist, err := h.manicuristService.GetManicurist(c.Request.Context(), spaID, id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, manicurist))
}

// UpdateManicurist handles PUT /api/manicurists/:id
// @Summary      Update manicurist
// @Tags         manicurists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                           true  "Manicurist ID"
// @Param        payload  body      service.UpdateManicuristRequest  true  "Update Manicurist Payload"
// @Success      200      {object}  response.Response{data=service.ManicuristResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/manicurists/{id} [put]
func (h *ManicuristHandler) UpdateManicurist(c *gin.Context) {
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

	var req service.UpdateManicuristRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	manicurist, err := h.manicuristService.UpdateManicurist(c.Request.Context(), ident, spaID, id, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, manicurist))
}

// DeleteManicurist handles DELETE /api/manicurists/:id
// @Summary      Delete manicurist
// @Tags         manicurists
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Manicurist ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/manicurists/{id} [delete]
func (h *ManicuristHandler) DeleteManicurist(c *gin.Context) {
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

	if err := h.manicuristService.DeleteManicurist(c.Request.Context(), ident, spaID, id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Manicurist deleted successfully"))
}
