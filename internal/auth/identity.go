package auth

import (
	"backend/internal/model"

	"github.com/google/uuid"
)

// Identity is the request-scoped representation of the authenticated caller.
// It is built once per request from verified JWT claims and then passed by
// value; nothing mutates it after construction.
type Identity struct {
	UserID       uuid.UUID
	Role         model.Role
	SpaID        *uuid.UUID
	BranchID     *uuid.UUID
	IsSuperAdmin bool
	IsActive     bool
}

// IsSpaAdmin reports whether the identity holds the spa-wide admin role.
func (id Identity) IsSpaAdmin() bool { return id.Role == model.RoleSpaAdmin }

// IsBranchAdmin reports whether the identity administers a single branch.
func (id Identity) IsBranchAdmin() bool { return id.Role == model.RoleBranchAdmin }

// IsManicurist reports whether the identity is a service provider.
func (id Identity) IsManicurist() bool { return id.Role == model.RoleManicurist }

// IsClient reports whether the identity is a spa customer.
func (id Identity) IsClient() bool { return id.Role == model.RoleClient }

// CanAccessSpa reports whether the caller may touch records of the given spa.
// Super admins may touch anything; everyone else only their own spa.
func CanAccessSpa(id Identity, spaID uuid.UUID) bool {
	if id.IsSuperAdmin {
		return true
	}
	if id.SpaID == nil || spaID == uuid.Nil {
		return false
	}
	return *id.SpaID == spaID
}

// CanAccessBranch reports whether the caller may touch records of the given
// branch. Spa admins have spa-wide access, so only the spa must match; branch
// scoped roles must match both identifiers exactly.
func CanAccessBranch(id Identity, spaID, branchID uuid.UUID) bool {
	if id.IsSuperAdmin {
		return true
	}
	if !CanAccessSpa(id, spaID) {
		return false
	}
	if id.IsSpaAdmin() {
		return true
	}
	if id.BranchID == nil || branchID == uuid.Nil {
		return false
	}
	return *id.BranchID == branchID
}

// CanManageUsers reports whether the caller may create, update or delete
// user accounts within their scope.
func CanManageUsers(id Identity) bool {
	return id.IsSuperAdmin || id.IsSpaAdmin()
}

// CanManageBranches reports whether the caller may administer branches.
func CanManageBranches(id Identity) bool {
	return id.IsSuperAdmin || id.IsSpaAdmin()
}
