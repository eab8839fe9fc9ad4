package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(router *gin.Engine, token string, bearer bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		if bearer {
			req.Header.Set("Authorization", "Bearer "+token)
		} else {
			req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		ident, ok := IdentityFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, ident.UserID.String())
	})

	spaID := uuid.New()
	userID := uuid.New()
	token := signToken(t, userID, model.RoleManicurist, &spaID, nil, false, true)

	// cookie and bearer header are both accepted
	w := doRequest(router, token, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	assert.Equal(t, http.StatusOK, doRequest(router, token, true).Code)

	// missing or garbage tokens are rejected
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "", false).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "not-a-jwt", false).Code)
}

func TestRequireAuthRejectsInactive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, uuid.New(), model.RoleSpaAdmin, nil, nil, false, false)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, token, false).Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireRole(model.RoleSpaAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	spaID := uuid.New()
	branchID := uuid.New()

	adminToken := signToken(t, uuid.New(), model.RoleSpaAdmin, &spaID, nil, false, true)
	assert.Equal(t, http.StatusOK, doRequest(router, adminToken, false).Code)

	manicuristToken := signToken(t, uuid.New(), model.RoleManicurist, &spaID, &branchID, false, true)
	assert.Equal(t, http.StatusForbidden, doRequest(router, manicuristToken, false).Code)

	// super admins pass every role gate
	superToken := signToken(t, uuid.New(), model.RoleSuperAdmin, nil, nil, true, true)
	assert.Equal(t, http.StatusOK, doRequest(router, superToken, false).Code)
}

func TestResolveIdentityRejectsUnknownRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, uuid.New(), model.Role("JANITOR"), nil, nil, false, true)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, token, false).Code)
}
