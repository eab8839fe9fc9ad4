package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/internal/auth"
	"backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, userID uuid.UUID, role model.Role, spaID, branchID *uuid.UUID, super, active bool) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":    userID.String(),
		"role":   string(role),
		"super":  super,
		"active": active,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	if spaID != nil {
		claims["spa_id"] = spaID.String()
	}
	if branchID != nil {
		claims["branch_id"] = branchID.String()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(GetJWTSecret())
	require.NoError(t, err)
	return token
}

func newPageRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(PageGuard())
	okHandler := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	router.GET("/", okHandler)
	router.GET("/login", okHandler)
	router.GET("/dashboard/:area", okHandler)
	router.GET("/dashboard/:area/:spaID", okHandler)
	router.GET("/dashboard/:area/:spaID/:branchID", okHandler)
	router.GET("/api/ping", okHandler)
	router.GET("/health", okHandler)
	return router
}

func getPage(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPageGuardPublicPagesWithoutSession(t *testing.T) {
	router := newPageRouter()

	assert.Equal(t, http.StatusOK, getPage(router, "/", "").Code)
	assert.Equal(t, http.StatusOK, getPage(router, "/login", "").Code)
}

func TestPageGuardExcludedPathsSkipChecks(t *testing.T) {
	router := newPageRouter()

	assert.Equal(t, http.StatusOK, getPage(router, "/api/ping", "").Code)
	assert.Equal(t, http.StatusOK, getPage(router, "/health", "").Code)
}

func TestPageGuardRedirectsAnonymousToLogin(t *testing.T) {
	router := newPageRouter()

	w := getPage(router, "/dashboard/spa-admin/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPageGuardRedirectsInactiveToLogin(t *testing.T) {
	router := newPageRouter()
	spaID := uuid.New()
	token := signToken(t, uuid.New(), model.RoleSpaAdmin, &spaID, nil, false, false)

	w := getPage(router, "/dashboard/spa-admin/"+spaID.String(), token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestPageGuardSuperAdminBypassesTenantChecks(t *testing.T) {
	router := newPageRouter()
	token := signToken(t, uuid.New(), model.RoleSuperAdmin, nil, nil, true, true)

	// Any spa, any branch, any area.
	w := getPage(router, "/dashboard/spa-admin/"+uuid.NewString()+"/"+uuid.NewString(), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPageGuardSpaMismatchRedirectsHome(t *testing.T) {
	router := newPageRouter()
	ownSpa := uuid.New()
	token := signToken(t, uuid.New(), model.RoleSpaAdmin, &ownSpa, nil, false, true)

	w := getPage(router, "/dashboard/spa-admin/"+uuid.NewString(), token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/spa-admin/"+ownSpa.String(), w.Header().Get("Location"))
}

func TestPageGuardSpaAdminReachesAnyBranchPage(t *testing.T) {
	router := newPageRouter()
	spaID := uuid.New()
	token := signToken(t, uuid.New(), model.RoleSpaAdmin, &spaID, nil, false, true)

	w := getPage(router, "/dashboard/spa-admin/"+spaID.String()+"/"+uuid.NewString(), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPageGuardBranchMismatchRedirects(t *testing.T) {
	router := newPageRouter()
	spaID := uuid.New()
	branchID := uuid.New()
	token := signToken(t, uuid.New(), model.RoleBranchAdmin, &spaID, &branchID, false, true)

	ownPath := "/dashboard/branch-admin/" + spaID.String() + "/" + branchID.String()
	assert.Equal(t, http.StatusOK, getPage(router, ownPath, token).Code)

	w := getPage(router, "/dashboard/branch-admin/"+spaID.String()+"/"+uuid.NewString(), token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, ownPath, w.Header().Get("Location"))
}

func TestPageGuardAreaRoleMismatchRedirects(t *testing.T) {
	router := newPageRouter()
	spaID := uuid.New()
	branchID := uuid.New()
	token := signToken(t, uuid.New(), model.RoleManicurist, &spaID, &branchID, false, true)

	// A manicurist in the branch-admin area gets bounced to their own dashboard.
	w := getPage(router, "/dashboard/branch-admin/"+spaID.String()+"/"+branchID.String(), token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/manicurist/"+spaID.String()+"/"+branchID.String(), w.Header().Get("Location"))
}

func TestPageGuardMalformedSpaSegmentRedirects(t *testing.T) {
	router := newPageRouter()
	spaID := uuid.New()
	token := signToken(t, uuid.New(), model.RoleSpaAdmin, &spaID, nil, false, true)

	w := getPage(router, "/dashboard/spa-admin/not-a-uuid", token)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestDefaultDashboardPath(t *testing.T) {
	spaID := uuid.New()
	branchID := uuid.New()

	cases := []struct {
		name  string
		ident auth.Identity
		want  string
	}{
		{"super admin", auth.Identity{Role: model.RoleSuperAdmin, IsSuperAdmin: true}, "/dashboard/super-admin"},
		{"spa admin", auth.Identity{Role: model.RoleSpaAdmin, SpaID: &spaID}, "/dashboard/spa-admin/" + spaID.String()},
		{"branch admin", auth.Identity{Role: model.RoleBranchAdmin, SpaID: &spaID, BranchID: &branchID}, "/dashboard/branch-admin/" + spaID.String() + "/" + branchID.String()},
		{"manicurist", auth.Identity{Role: model.RoleManicurist, SpaID: &spaID, BranchID: &branchID}, "/dashboard/manicurist/" + spaID.String() + "/" + branchID.String()},
		{"client", auth.Identity{Role: model.RoleClient}, "/login"},
		{"spa admin without spa", auth.Identity{Role: model.RoleSpaAdmin}, "/login"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DefaultDashboardPath(tc.ident))
		})
	}
}
