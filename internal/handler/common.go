package handler

import (
	"net/http"

	"backend/internal/auth"
	"backend/internal/middleware"
	"backend/pkg/apperr"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// fail converts a typed application error into the HTTP response envelope.
// Internal failures are never echoed to clients.
func fail(c *gin.Context, err error) {
	appErr := apperr.From(err)
	status := appErr.HTTPStatus()

	if appErr.Kind == apperr.KindValidation && len(appErr.Fields) > 0 {
		c.JSON(status, response.ErrorWithFields(status, appErr.Message, appErr.Fields))
		return
	}

	message := appErr.Message
	if appErr.Kind == apperr.KindInternal {
		message = "internal server error"
	}
	c.JSON(status, response.Error(status, message))
}

// bindError maps gin binding failures to a 400 with a field-level error list.
func bindError(c *gin.Context, err error) {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]apperr.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperr.FieldError{Field: fe.Field(), Message: fe.Tag()})
		}
		fail(c, apperr.Validation("invalid request payload", fields...))
		return
	}
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}

// identity pulls the Identity stored by the auth middleware; its absence
// means the route was wired without RequireAuth, treated as unauthenticated.
func identity(c *gin.Context) (auth.Identity, bool) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		fail(c, apperr.Unauthenticated("no authenticated user"))
		return auth.Identity{}, false
	}
	return ident, true
}

// resolveSpaID picks the tenant for the request: the spa_id query parameter
// when present (required for super admins), otherwise the caller's own spa.
func resolveSpaID(c *gin.Context, ident auth.Identity) (uuid.UUID, bool) {
	if raw := c.Query("spa_id"); raw != "" {
		spaID, err := uuid.Parse(raw)
		if err != nil {
			fail(c, apperr.Validation("invalid spa_id", apperr.FieldError{Field: "spa_id", Message: "must be a UUID"}))
			return uuid.Nil, false
		}
		return spaID, true
	}
	if ident.SpaID != nil {
		return *ident.SpaID, true
	}
	fail(c, apperr.Validation("spa_id is required", apperr.FieldError{Field: "spa_id", Message: "required"}))
	return uuid.Nil, false
}

// parseIDParam parses a UUID path parameter and fails with a 400 otherwise.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		fail(c, apperr.Validation("invalid "+name, apperr.FieldError{Field: name, Message: "must be a UUID"}))
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUIDQuery parses an optional UUID query parameter.
func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		fail(c, apperr.Validation("invalid "+name, apperr.FieldError{Field: name, Message: "must be a UUID"}))
		return nil, false
	}
	return &id, true
}
