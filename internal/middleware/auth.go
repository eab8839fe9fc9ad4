package middleware

import (
	"backend/internal/auth"
	"backend/internal/model"
	"backend/pkg/response"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const identityKey = "identity"

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" || os.Getenv("RENDER") != "" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	// access_token: 24h, path=/, domain="", secure, HttpOnly
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	// refresh_token: 7 days, path=/, domain="", secure, HttpOnly
	c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" || os.Getenv("RENDER") != "" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// extractToken reads the access token from the cookie, falling back to the
// Authorization header.
func extractToken(c *gin.Context) (string, bool) {
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr == nil && tokenString != "" {
		return tokenString, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// ResolveIdentity parses and verifies the session token and builds the
// canonical Identity value. It never touches the database; guards re-check
// stored tenant membership before data access.
func ResolveIdentity(c *gin.Context) (auth.Identity, bool) {
	tokenString, ok := extractToken(c)
	if !ok {
		return auth.Identity{}, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return auth.Identity{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Identity{}, false
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return auth.Identity{}, false
	}

	roleStr, _ := claims["role"].(string)
	role := model.Role(roleStr)
	if !model.ValidRole(role) {
		return auth.Identity{}, false
	}

	ident := auth.Identity{
		UserID: userID,
		Role:   role,
	}
	if v, ok := claims["super"].(bool); ok {
		ident.IsSuperAdmin = v
	}
	if v, ok := claims["active"].(bool); ok {
		ident.IsActive = v
	}
	if s, ok := claims["spa_id"].(string); ok && s != "" {
		if spaID, err := uuid.Parse(s); err == nil {
			ident.SpaID = &spaID
		}
	}
	if s, ok := claims["branch_id"].(string); ok && s != "" {
		if branchID, err := uuid.Parse(s); err == nil {
			ident.BranchID = &branchID
		}
	}

	return ident, true
}

// IdentityFromContext returns the Identity stored by the auth middleware
// (RequireAuth, RequireRole or PageGuard).
func IdentityFromContext(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}
	ident, ok := v.(auth.Identity)
	return ident, ok
}

// RequireAuth validates the session token and stores the Identity in the
// request context. Inactive accounts are rejected outright.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := ResolveIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing or invalid"))
			return
		}
		if !ident.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Account is deactivated"))
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireRole validates the session and checks the caller's role against the
// allowed list. Super admins always pass.
func RequireRole(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := ResolveIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing or invalid"))
			return
		}
		if !ident.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Account is deactivated"))
			return
		}

		roleAllowed := ident.IsSuperAdmin
		for _, role := range allowedRoles {
			if ident.Role == role {
				roleAllowed = true
				break
			}
		}
		if !roleAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}
