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

type BranchHandler struct {
	branchService service.BranchService
	guard         *guard.Guard
}

func NewBranchHandler(branchService service.BranchService, g *guard.Guard) *BranchHandler {
	return &BranchHandler{branchService: branchService, guard: g}
}

func (h *BranchHandler) RegisterRoutes(router *gin.RouterGroup) {
	branches := router.Group("/api/branches")
	{
		branches.GET("", middleware.RequireAuth(), h.ListBranches)
		branches.GET("/:id", middleware.RequireAuth(), h.GetBranch)
		branches.POST("", middleware.RequireRole(model.RoleSpaAdmin), h.CreateBranch)
		branches.PUT("/:id", middleware.RequireRole(model.RoleSpaAdmin), h.UpdateBranch)
		branches.DELETE("/:id", middleware.RequireRole(model.RoleSpaAdmin), h.DeleteBranch)
	}
}

// CreateBranch handles POST /api/branches
// @Summary      Create branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id   query     string                       false  "Spa ID (defaults to caller's spa)"
// @Param        payload  body      service.CreateBranchRequest  true   "Create Branch Payload"
// @Success      201      {object}  response.Response{data=service.BranchResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/branches [post]
func (h *BranchHandler) CreateBranch(c *gin.Context) {
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

	var req service.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), ident, spaID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, branch))
}

// ListBranches handles GET /api/branches scoped to one spa
// @Summary      List branches
// @Tags         branches
// @Produce      json
// @Security     BearerAuth
// @Param        spa_id query     string  false  "Spa ID (defaults to caller's spa)"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/branches [get]
func (h *BranchHandler) ListBranches(c *gin.Context) {
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
	branches, total, err := h.branchService.ListBranches(c.Request.Context(), spaID, params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("branches", branches, total)))
}

// GetBranch handles GET /api/branches/:id
// @Summary      Get branch by ID
// @Tags         branches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Branch ID"
// @Success      200  {object}  response.Response{data=service.BranchResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/branches/{id} [get]
func (h *BranchHandler) GetBranch(c *gin.Context) {
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

	if err := h.guard.RequireBranchAccess(c.Request.Context(), ident, spaID, id); err != nil {
		fail(c, err)
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), spaID, id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, branch))
}

// UpdateBranch handles PUT /api/branches/:id
// @Summary      Update branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Branch ID"
// @Param        payload  body      service.UpdateBranchRequest  true  "Update Branch Payload"
// @Success      200      {object}  response.Response{data=service.BranchResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/branches/{id} [put]
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
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

	var req service.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), ident, spaID, id, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, branch))
}

// DeleteBranch handles DELETE /api/branches/:id
// @Summary      Delete branch
// @Tags         branches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Branch ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/branches/{id} [delete]
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
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

	if err := h.branchService.DeleteBranch(c.Request.Context(), ident, spaID, id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Branch deleted successfully"))
}
