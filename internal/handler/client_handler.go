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

type ClientHandler struct {
	clientService service.ClientService
	guard         *guard.Guard
}

func NewClientHandler(clientService service.ClientService, g *guard.Guard) *ClientHandler {
	return &ClientHandler{clientService: clientService, guard: g}
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	clients := router.Group("/api/clients")
	clients.Use(middleware.RequireRole(model.RoleBranchAdmin, model.RoleSpaAdmin, model.RoleManicurist))
	{
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
		clients.POST("", h.CreateClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", middleware.RequireRole(model.RoleBranchAdmin, model.RoleSpaAdmin), h.DeleteClient)
	}
}

// CreateClient handles POST /api/clients
// @Summary      Create client
// @Description  Registers a new client for the spa; document number is unique per spa
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id   query     string                       false  "Spa ID (defaults to caller's spa)"
// @Param        payload  body      service.CreateClientRequest  true   "Create Client Payload"
// @Success      201      {object}  response.Response{data=service.ClientResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
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

	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), spaID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, client))
}

// ListClients handles GET /api/clients with an optional branch filter
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id    query     string  false  "Spa ID (defaults to caller's spa)"
// @Param        branch_id query     string  false  "Branch ID filter"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 20)"
// @Success      200       {object}  response.Response{data=object}
// @Router       /api/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
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
	clients, total, err := h.clientService.ListClients(c.Request.Context(), spaID, branchID, params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("clients", clients, total)))
}

// GetClient handles GET /api/clients/:id
// @Summary      Get client by ID
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  response.Response{data=service.ClientResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
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

	client, err := h.clientService.GetClient(c.Request.Context(), spaID, id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// UpdateClient handles PUT /api/clients/:id
// @Summary      Update client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Client ID"
// @Param        payload  body      service.UpdateClientRequest  true  "Update Client Payload"
// @Success      200      {object}  response.Response{data=service.ClientResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
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

	var req service.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), spaID, id, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// DeleteClient handles DELETE /api/clients/:id
// @Summary      Delete client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
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

	if err := h.clientService.DeleteClient(c.Request.Context(), spaID, id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Client deleted successfully"))
}
