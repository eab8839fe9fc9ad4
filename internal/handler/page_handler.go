package handler

import (
	"fmt"
	"net/http"

	"backend/internal/guard"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PageHandler serves the server-rendered dashboard shell. The page guard
// middleware has already vetted the URL against the session by the time these
// run; handlers re-check tenant ownership against the database before
// rendering anything.
type PageHandler struct {
	guard *guard.Guard
}

func NewPageHandler(g *guard.Guard) *PageHandler {
	return &PageHandler{guard: g}
}

func (h *PageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.Home)
	router.GET("/login", h.LoginPage)
	router.GET("/dashboard/:area", h.Dashboard)
	router.GET("/dashboard/:area/:spaID", h.Dashboard)
	router.GET("/dashboard/:area/:spaID/:branchID", h.Dashboard)
}

func renderPage(c *gin.Context, title, body string) {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%s</title></head>
<body><main id="app" data-page=%q>%s</main></body>
</html>`, title, title, body)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// Home serves the public landing page.
func (h *PageHandler) Home(c *gin.Context) {
	if ident, ok := middleware.IdentityFromContext(c); ok {
		c.Redirect(http.StatusFound, middleware.DefaultDashboardPath(ident))
		return
	}
	renderPage(c, "Welcome", `<h1>Nail Spa Manager</h1><a href="/login">Sign in</a>`)
}

// LoginPage serves the sign-in form.
func (h *PageHandler) LoginPage(c *gin.Context) {
	renderPage(c, "Sign in", `<h1>Sign in</h1><form method="post" action="/login">`+
		`<input name="email" type="email" placeholder="Email">`+
		`<input name="password" type="password" placeholder="Password">`+
		`<button type="submit">Sign in</button></form>`)
}

// Dashboard serves the per-role dashboard shell. Tenant segments in the URL
// are re-verified against stored rows, not just the token claims.
func (h *PageHandler) Dashboard(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	area := c.Param("area")

	if spaSeg := c.Param("spaID"); spaSeg != "" {
		spaID, err := uuid.Parse(spaSeg)
		if err != nil {
			c.Redirect(http.StatusFound, middleware.DefaultDashboardPath(ident))
			c.Abort()
			return
		}
		if !h.guard.RequireSpaAccessForPage(c, ident, spaID) {
			return
		}
		if branchSeg := c.Param("branchID"); branchSeg != "" {
			branchID, err := uuid.Parse(branchSeg)
			if err != nil {
				c.Redirect(http.StatusFound, middleware.DefaultDashboardPath(ident))
				c.Abort()
				return
			}
			if !h.guard.RequireBranchAccessForPage(c, ident, spaID, branchID) {
				return
			}
		}
	}

	renderPage(c, area+" dashboard", fmt.Sprintf(`<h1>%s dashboard</h1><p>Signed in as %s</p>`, area, ident.UserID))
}
