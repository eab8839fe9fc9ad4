package middleware

import (
	"backend/internal/auth"
	"backend/internal/model"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// excludedPrefixes are request paths the page guard never inspects: API,
// websocket, docs and static assets have their own protection.
var excludedPrefixes = []string{"/api/", "/ws", "/swagger/", "/health", "/static/", "/images/"}

// areaRoles maps the dashboard area segment to the role allowed into it.
var areaRoles = map[string]model.Role{
	"super-admin":  model.RoleSuperAdmin,
	"spa-admin":    model.RoleSpaAdmin,
	"branch-admin": model.RoleBranchAdmin,
	"manicurist":   model.RoleManicurist,
}

func isExcludedPath(path string) bool {
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isPublicPage(path string) bool {
	switch path {
	case "/", "/login", "/refresh", "/logout":
		return true
	}
	return false
}

// DefaultDashboardPath is where a denied caller is sent: their own dashboard,
// or the login page when they have none.
func DefaultDashboardPath(ident auth.Identity) string {
	switch {
	case ident.IsSuperAdmin:
		return "/dashboard/super-admin"
	case ident.Role == model.RoleSpaAdmin && ident.SpaID != nil:
		return "/dashboard/spa-admin/" + ident.SpaID.String()
	case ident.Role == model.RoleBranchAdmin && ident.SpaID != nil && ident.BranchID != nil:
		return "/dashboard/branch-admin/" + ident.SpaID.String() + "/" + ident.BranchID.String()
	case ident.Role == model.RoleManicurist && ident.SpaID != nil && ident.BranchID != nil:
		return "/dashboard/manicurist/" + ident.SpaID.String() + "/" + ident.BranchID.String()
	}
	return "/login"
}

// PageGuard protects the server-rendered dashboard routes. It is a strictly
// linear decision list; the order of checks is load-bearing (branch scoping
// assumes the spa already matched, role gating assumes both did):
//
//  1. public pages ("/", "/login" and the auth endpoints) are always
//     allowed, authenticated or not
//  2. no resolvable identity -> redirect to /login
//  3. deactivated account -> redirect to /login
//  4. super admin -> allowed everywhere
//  5. URL spa segment must match the caller's spa
//  6. URL branch segment must match the caller's branch, unless the caller
//     has spa-wide standing
//  7. the dashboard area prefix must match the caller's role
//  8. allow
//
// Tenant identifiers are read from named route parameters (spaID, branchID),
// not positional string splitting.
func PageGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isExcludedPath(path) {
			c.Next()
			return
		}

		ident, hasIdentity := ResolveIdentity(c)
		if hasIdentity && ident.IsActive {
			// Page handlers read the session the same way API handlers do.
			c.Set(identityKey, ident)
		}

		if isPublicPage(path) {
			c.Next()
			return
		}

		if !hasIdentity {
			redirectTo(c, "/login")
			return
		}

		if !ident.IsActive {
			redirectTo(c, "/login")
			return
		}

		if ident.IsSuperAdmin {
			c.Next()
			return
		}

		if spaSeg := c.Param("spaID"); spaSeg != "" {
			spaID, err := uuid.Parse(spaSeg)
			if err != nil || !auth.CanAccessSpa(ident, spaID) {
				redirectTo(c, DefaultDashboardPath(ident))
				return
			}
		}

		if branchSeg := c.Param("branchID"); branchSeg != "" && !ident.IsSpaAdmin() {
			branchID, err := uuid.Parse(branchSeg)
			if err != nil || ident.BranchID == nil || *ident.BranchID != branchID {
				redirectTo(c, DefaultDashboardPath(ident))
				return
			}
		}

		if area := c.Param("area"); area != "" {
			if required, ok := areaRoles[area]; ok && ident.Role != required {
				redirectTo(c, DefaultDashboardPath(ident))
				return
			}
		}

		c.Next()
	}
}

func redirectTo(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}
