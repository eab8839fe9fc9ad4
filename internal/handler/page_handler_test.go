package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/internal/guard"
	"backend/internal/middleware"
	"backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserFinder struct {
	spaIDs map[uuid.UUID]*uuid.UUID
}

func (f *stubUserFinder) FindUserSpaID(_ context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	spaID, ok := f.spaIDs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return spaID, nil
}

type stubBranchFinder struct {
	owners map[uuid.UUID]uuid.UUID
}

func (f *stubBranchFinder) FindBranchSpaID(_ context.Context, branchID uuid.UUID) (uuid.UUID, error) {
	spaID, ok := f.owners[branchID]
	if !ok {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return spaID, nil
}

func signPageToken(t *testing.T, userID uuid.UUID, role model.Role, spaID, branchID *uuid.UUID, active bool) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":    userID.String(),
		"role":   string(role),
		"super":  role == model.RoleSuperAdmin,
		"active": active,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	if spaID != nil {
		claims["spa_id"] = spaID.String()
	}
	if branchID != nil {
		claims["branch_id"] = branchID.String()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.GetJWTSecret())
	require.NoError(t, err)
	return token
}

// newPageServer wires PageGuard and PageHandler together the same way the
// composition root does, backed by stub lookups.
func newPageServer(users map[uuid.UUID]*uuid.UUID, branches map[uuid.UUID]uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.PageGuard())
	h := NewPageHandler(guard.New(&stubUserFinder{spaIDs: users}, &stubBranchFinder{owners: branches}))
	h.RegisterRoutes(router.Group(""))
	return router
}

func requestPage(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDashboardServesOwnSpaPage(t *testing.T) {
	spaID := uuid.New()
	userID := uuid.New()
	router := newPageServer(map[uuid.UUID]*uuid.UUID{userID: &spaID}, nil)

	token := signPageToken(t, userID, model.RoleSpaAdmin, &spaID, nil, true)
	w := requestPage(router, "/dashboard/spa-admin/"+spaID.String(), token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "spa-admin dashboard")
}

func TestDashboardServesOwnBranchPage(t *testing.T) {
	spaID := uuid.New()
	branchID := uuid.New()
	userID := uuid.New()
	router := newPageServer(
		map[uuid.UUID]*uuid.UUID{userID: &spaID},
		map[uuid.UUID]uuid.UUID{branchID: spaID},
	)

	token := signPageToken(t, userID, model.RoleBranchAdmin, &spaID, &branchID, true)
	w := requestPage(router, "/dashboard/branch-admin/"+spaID.String()+"/"+branchID.String(), token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "branch-admin dashboard")
}

func TestDashboardStaleClaimsRedirect(t *testing.T) {
	// The token still claims spa A but the stored row was moved to spa B;
	// the page loader trusts the database and bounces the caller.
	spaA := uuid.New()
	spaB := uuid.New()
	userID := uuid.New()
	router := newPageServer(map[uuid.UUID]*uuid.UUID{userID: &spaB}, nil)

	token := signPageToken(t, userID, model.RoleSpaAdmin, &spaA, nil, true)
	w := requestPage(router, "/dashboard/spa-admin/"+spaA.String(), token)

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestHomeRedirectsAuthenticatedToDashboard(t *testing.T) {
	spaID := uuid.New()
	userID := uuid.New()
	router := newPageServer(map[uuid.UUID]*uuid.UUID{userID: &spaID}, nil)

	token := signPageToken(t, userID, model.RoleSpaAdmin, &spaID, nil, true)
	w := requestPage(router, "/", token)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/spa-admin/"+spaID.String(), w.Header().Get("Location"))
}

func TestHomeServesLandingWithoutSession(t *testing.T) {
	router := newPageServer(nil, nil)

	w := requestPage(router, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sign in")
}
