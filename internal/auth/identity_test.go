package auth

import (
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanAccessSpa(t *testing.T) {
	spaA := uuid.New()
	spaB := uuid.New()

	superAdmin := Identity{UserID: uuid.New(), Role: model.RoleSuperAdmin, IsSuperAdmin: true, IsActive: true}
	spaAdmin := Identity{UserID: uuid.New(), Role: model.RoleSpaAdmin, SpaID: &spaA, IsActive: true}
	noSpa := Identity{UserID: uuid.New(), Role: model.RoleManicurist, IsActive: true}

	assert.True(t, CanAccessSpa(superAdmin, spaA))
	assert.True(t, CanAccessSpa(superAdmin, spaB))

	assert.True(t, CanAccessSpa(spaAdmin, spaA))
	assert.False(t, CanAccessSpa(spaAdmin, spaB))

	assert.False(t, CanAccessSpa(noSpa, spaA))
	assert.False(t, CanAccessSpa(spaAdmin, uuid.Nil))
}

func TestCanAccessBranch(t *testing.T) {
	spaA := uuid.New()
	spaB := uuid.New()
	branch1 := uuid.New()
	branch2 := uuid.New()

	superAdmin := Identity{UserID: uuid.New(), Role: model.RoleSuperAdmin, IsSuperAdmin: true, IsActive: true}
	spaAdmin := Identity{UserID: uuid.New(), Role: model.RoleSpaAdmin, SpaID: &spaA, IsActive: true}
	branchAdmin := Identity{UserID: uuid.New(), Role: model.RoleBranchAdmin, SpaID: &spaA, BranchID: &branch1, IsActive: true}
	manicurist := Identity{UserID: uuid.New(), Role: model.RoleManicurist, SpaID: &spaA, BranchID: &branch1, IsActive: true}

	// super admins reach every branch in every spa
	assert.True(t, CanAccessBranch(superAdmin, spaA, branch1))
	assert.True(t, CanAccessBranch(superAdmin, spaB, branch2))

	// spa admins reach every branch of their own spa only
	assert.True(t, CanAccessBranch(spaAdmin, spaA, branch1))
	assert.True(t, CanAccessBranch(spaAdmin, spaA, branch2))
	assert.False(t, CanAccessBranch(spaAdmin, spaB, branch1))

	// branch-scoped roles are pinned to their exact branch
	assert.True(t, CanAccessBranch(branchAdmin, spaA, branch1))
	assert.False(t, CanAccessBranch(branchAdmin, spaA, branch2))
	assert.True(t, CanAccessBranch(manicurist, spaA, branch1))
	assert.False(t, CanAccessBranch(manicurist, spaA, branch2))

	// spa mismatch denies regardless of branch
	assert.False(t, CanAccessBranch(branchAdmin, spaB, branch1))

	assert.False(t, CanAccessBranch(branchAdmin, spaA, uuid.Nil))
}

func TestRolePredicates(t *testing.T) {
	assert.True(t, Identity{Role: model.RoleSpaAdmin}.IsSpaAdmin())
	assert.True(t, Identity{Role: model.RoleBranchAdmin}.IsBranchAdmin())
	assert.True(t, Identity{Role: model.RoleManicurist}.IsManicurist())
	assert.True(t, Identity{Role: model.RoleClient}.IsClient())
	assert.False(t, Identity{Role: model.RoleClient}.IsSpaAdmin())
}

func TestManagementPredicates(t *testing.T) {
	superAdmin := Identity{Role: model.RoleSuperAdmin, IsSuperAdmin: true}
	spaAdmin := Identity{Role: model.RoleSpaAdmin}
	branchAdmin := Identity{Role: model.RoleBranchAdmin}
	client := Identity{Role: model.RoleClient}

	assert.True(t, CanManageUsers(superAdmin))
	assert.True(t, CanManageUsers(spaAdmin))
	assert.False(t, CanManageUsers(branchAdmin))
	assert.False(t, CanManageUsers(client))

	assert.True(t, CanManageBranches(superAdmin))
	assert.True(t, CanManageBranches(spaAdmin))
	assert.False(t, CanManageBranches(branchAdmin))
}
