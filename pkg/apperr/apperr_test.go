package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, Unauthenticated("x").HTTPStatus())
	assert.Equal(t, http.StatusForbidden, Forbidden("x").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, Validation("x").HTTPStatus())
	assert.Equal(t, http.StatusNotFound, NotFound("x").HTTPStatus())
	assert.Equal(t, http.StatusConflict, Conflict("x").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Internal(errors.New("boom")).HTTPStatus())
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("db exploded")
	appErr := From(cause)

	assert.Equal(t, KindInternal, appErr.Kind)
	assert.ErrorIs(t, appErr, cause)
}

func TestFromPassesThroughTypedErrors(t *testing.T) {
	orig := NotFound("spa not found")
	assert.Equal(t, orig, From(orig))
	assert.True(t, IsKind(orig, KindNotFound))
	assert.False(t, IsKind(orig, KindForbidden))
}

func TestIsKindNil(t *testing.T) {
	assert.False(t, IsKind(nil, KindInternal))
}
