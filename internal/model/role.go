package model

// Role is the closed set of user roles. Every role except SUPER_ADMIN is bound
// to a spa; BRANCH_ADMIN and MANICURIST are additionally bound to a branch.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleSpaAdmin    Role = "SPA_ADMIN"
	RoleBranchAdmin Role = "BRANCH_ADMIN"
	RoleManicurist  Role = "MANICURIST"
	RoleClient      Role = "CLIENT"
)

// ValidRole reports whether r is a member of the role enumeration.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleSpaAdmin, RoleBranchAdmin, RoleManicurist, RoleClient:
		return true
	}
	return false
}

// RequiresBranch reports whether the role must carry a branch assignment.
func (r Role) RequiresBranch() bool {
	return r == RoleBranchAdmin || r == RoleManicurist
}

// RequiresSpa reports whether the role must carry a spa assignment.
func (r Role) RequiresSpa() bool {
	return r != RoleSuperAdmin
}
