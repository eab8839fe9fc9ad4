package guard

import (
	"context"
	"errors"
	"net/http"

	"backend/internal/auth"
	"backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSpaFinder resolves the stored spa assignment of a user.
type UserSpaFinder interface {
	FindUserSpaID(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
}

// BranchSpaFinder resolves the owning spa of a branch.
type BranchSpaFinder interface {
	FindBranchSpaID(ctx context.Context, branchID uuid.UUID) (uuid.UUID, error)
}

// Guard re-checks tenant ownership inside API handlers and page loaders. The
// page middleware does not run for API routes, and session claims can go
// stale, so every check resolves the acting user's stored spa assignment
// from the database rather than trusting the token.
type Guard struct {
	users    UserSpaFinder
	branches BranchSpaFinder
}

func New(users UserSpaFinder, branches BranchSpaFinder) *Guard {
	return &Guard{users: users, branches: branches}
}

// AssertUserSpaAccess fails closed unless the acting user belongs to the
// requested spa. Super admins always pass. One-shot; never retried.
func (g *Guard) AssertUserSpaAccess(ctx context.Context, ident auth.Identity, spaID uuid.UUID) error {
	if ident.UserID == uuid.Nil {
		return apperr.Unauthenticated("no authenticated user")
	}
	if ident.IsSuperAdmin {
		return nil
	}

	storedSpaID, err := g.users.FindUserSpaID(ctx, ident.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Unauthenticated("user no longer exists")
		}
		return apperr.Internal(err)
	}

	if storedSpaID == nil || *storedSpaID != spaID {
		return apperr.Forbidden("access to this spa is denied")
	}
	return nil
}

// RequireBranchAccess additionally verifies the branch belongs to the spa and
// that branch-scoped callers are assigned to that exact branch. Spa admins
// have spa-wide standing and skip the membership check.
func (g *Guard) RequireBranchAccess(ctx context.Context, ident auth.Identity, spaID, branchID uuid.UUID) error {
	if err := g.AssertUserSpaAccess(ctx, ident, spaID); err != nil {
		return err
	}

	branchSpaID, err := g.branches.FindBranchSpaID(ctx, branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absent and wrong-tenant are indistinguishable on purpose.
			return apperr.NotFound("branch not found")
		}
		return apperr.Internal(err)
	}
	if branchSpaID != spaID {
		return apperr.NotFound("branch not found")
	}

	if ident.IsSuperAdmin || ident.IsSpaAdmin() {
		return nil
	}
	if ident.BranchID == nil || *ident.BranchID != branchID {
		return apperr.Forbidden("access to this branch is denied")
	}
	return nil
}

// RequireSpaAccessForPage is the page-loader variant: it redirects to the
// login page or the caller's own dashboard instead of failing with a status.
// Returns false when the request was redirected.
func (g *Guard) RequireSpaAccessForPage(c *gin.Context, ident auth.Identity, spaID uuid.UUID) bool {
	err := g.AssertUserSpaAccess(c.Request.Context(), ident, spaID)
	return g.handlePageFailure(c, ident, err)
}

// RequireBranchAccessForPage is the branch-level page-loader variant.
func (g *Guard) RequireBranchAccessForPage(c *gin.Context, ident auth.Identity, spaID, branchID uuid.UUID) bool {
	err := g.RequireBranchAccess(c.Request.Context(), ident, spaID, branchID)
	return g.handlePageFailure(c, ident, err)
}

func (g *Guard) handlePageFailure(c *gin.Context, ident auth.Identity, err error) bool {
	if err == nil {
		return true
	}
	if apperr.IsKind(err, apperr.KindUnauthenticated) {
		c.Redirect(http.StatusFound, "/login")
	} else {
		c.Redirect(http.StatusFound, dashboardPath(ident))
	}
	c.Abort()
	return false
}

func dashboardPath(ident auth.Identity) string {
	// Mirrors middleware.DefaultDashboardPath without importing it; the two
	// packages sit on opposite sides of the handler layer.
	switch {
	case ident.IsSuperAdmin:
		return "/dashboard/super-admin"
	case ident.IsSpaAdmin() && ident.SpaID != nil:
		return "/dashboard/spa-admin/" + ident.SpaID.String()
	case ident.IsBranchAdmin() && ident.SpaID != nil && ident.BranchID != nil:
		return "/dashboard/branch-admin/" + ident.SpaID.String() + "/" + ident.BranchID.String()
	case ident.IsManicurist() && ident.SpaID != nil && ident.BranchID != nil:
		return "/dashboard/manicurist/" + ident.SpaID.String() + "/" + ident.BranchID.String()
	}
	return "/login"
}
