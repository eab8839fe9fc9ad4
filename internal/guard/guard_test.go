package guard

import (
	"context"
	"testing"

	"backend/internal/auth"
	"backend/internal/model"
	"backend/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserFinder struct {
	spaIDs map[uuid.UUID]*uuid.UUID
}

func (f *fakeUserFinder) FindUserSpaID(_ context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	spaID, ok := f.spaIDs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return spaID, nil
}

type fakeBranchFinder struct {
	owners map[uuid.UUID]uuid.UUID
}

func (f *fakeBranchFinder) FindBranchSpaID(_ context.Context, branchID uuid.UUID) (uuid.UUID, error) {
	spaID, ok := f.owners[branchID]
	if !ok {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return spaID, nil
}

func newTestGuard(users map[uuid.UUID]*uuid.UUID, branches map[uuid.UUID]uuid.UUID) *Guard {
	return New(&fakeUserFinder{spaIDs: users}, &fakeBranchFinder{owners: branches})
}

func TestAssertUserSpaAccess(t *testing.T) {
	ctx := context.Background()
	spaA := uuid.New()
	spaB := uuid.New()
	userID := uuid.New()

	g := newTestGuard(map[uuid.UUID]*uuid.UUID{userID: &spaA}, nil)

	ident := auth.Identity{UserID: userID, Role: model.RoleSpaAdmin, SpaID: &spaA, IsActive: true}

	require.NoError(t, g.AssertUserSpaAccess(ctx, ident, spaA))

	err := g.AssertUserSpaAccess(ctx, ident, spaB)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestAssertUserSpaAccessStaleClaims(t *testing.T) {
	// Token claims say spa A, but the stored row was reassigned to spa B. The
	// guard trusts the database.
	ctx := context.Background()
	spaA := uuid.New()
	spaB := uuid.New()
	userID := uuid.New()

	g := newTestGuard(map[uuid.UUID]*uuid.UUID{userID: &spaB}, nil)

	ident := auth.Identity{UserID: userID, Role: model.RoleSpaAdmin, SpaID: &spaA, IsActive: true}

	err := g.AssertUserSpaAccess(ctx, ident, spaA)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	require.NoError(t, g.AssertUserSpaAccess(ctx, ident, spaB))
}

func TestAssertUserSpaAccessUnauthenticated(t *testing.T) {
	ctx := context.Background()
	g := newTestGuard(nil, nil)

	err := g.AssertUserSpaAccess(ctx, auth.Identity{}, uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}

func TestAssertUserSpaAccessDeletedUser(t *testing.T) {
	ctx := context.Background()
	g := newTestGuard(map[uuid.UUID]*uuid.UUID{}, nil)

	ident := auth.Identity{UserID: uuid.New(), Role: model.RoleSpaAdmin, IsActive: true}
	err := g.AssertUserSpaAccess(ctx, ident, uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}

func TestAssertUserSpaAccessSuperAdminBypass(t *testing.T) {
	ctx := context.Background()
	// No stored rows at all: the super admin never hits the database.
	g := newTestGuard(nil, nil)

	ident := auth.Identity{UserID: uuid.New(), Role: model.RoleSuperAdmin, IsSuperAdmin: true, IsActive: true}
	require.NoError(t, g.AssertUserSpaAccess(ctx, ident, uuid.New()))
}

func TestRequireBranchAccess(t *testing.T) {
	ctx := context.Background()
	spaA := uuid.New()
	spaB := uuid.New()
	branch1 := uuid.New()
	foreignBranch := uuid.New()
	adminID := uuid.New()
	branchAdminID := uuid.New()

	g := newTestGuard(
		map[uuid.UUID]*uuid.UUID{adminID: &spaA, branchAdminID: &spaA},
		map[uuid.UUID]uuid.UUID{branch1: spaA, foreignBranch: spaB},
	)

	spaAdmin := auth.Identity{UserID: adminID, Role: model.RoleSpaAdmin, SpaID: &spaA, IsActive: true}
	branchAdmin := auth.Identity{UserID: branchAdminID, Role: model.RoleBranchAdmin, SpaID: &spaA, BranchID: &branch1, IsActive: true}

	// spa admin reaches any branch of the spa
	require.NoError(t, g.RequireBranchAccess(ctx, spaAdmin, spaA, branch1))

	// branch admin reaches only the assigned branch
	require.NoError(t, g.RequireBranchAccess(ctx, branchAdmin, spaA, branch1))

	// a branch of another spa reads as absent, not forbidden
	err := g.RequireBranchAccess(ctx, spaAdmin, spaA, foreignBranch)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = g.RequireBranchAccess(ctx, spaAdmin, spaA, uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRequireBranchAccessWrongBranch(t *testing.T) {
	ctx := context.Background()
	spaA := uuid.New()
	branch1 := uuid.New()
	branch2 := uuid.New()
	userID := uuid.New()

	g := newTestGuard(
		map[uuid.UUID]*uuid.UUID{userID: &spaA},
		map[uuid.UUID]uuid.UUID{branch1: spaA, branch2: spaA},
	)

	branchAdmin := auth.Identity{UserID: userID, Role: model.RoleBranchAdmin, SpaID: &spaA, BranchID: &branch1, IsActive: true}

	err := g.RequireBranchAccess(ctx, branchAdmin, spaA, branch2)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}
