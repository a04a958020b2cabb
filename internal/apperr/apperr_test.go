package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("x").Status())
	assert.Equal(t, http.StatusUnauthorized, Auth("x").Status())
	assert.Equal(t, http.StatusForbidden, Forbidden("x").Status())
	assert.Equal(t, http.StatusNotFound, NotFound("x").Status())
	assert.Equal(t, http.StatusConflict, Conflict("x").Status())
	assert.Equal(t, http.StatusServiceUnavailable, Unavailable("x", nil).Status())
	assert.Equal(t, http.StatusInternalServerError, Internal(errors.New("boom")).Status())
}

func TestFromWrapsForeignErrors(t *testing.T) {
	cause := errors.New("db down")
	e := From(cause)
	assert.Equal(t, KindInternal, e.Kind)
	assert.ErrorIs(t, e, cause)

	nf := NotFound("application.not_found")
	wrapped := fmt.Errorf("load: %w", nf)
	assert.Same(t, nf, From(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindConflict))
	assert.Nil(t, From(nil))
}

func TestWithArgs(t *testing.T) {
	base := Validation("profile.avatar_size")
	e := base.With(5)
	assert.Equal(t, []any{5}, e.Args)
	assert.Nil(t, base.Args)
	assert.Equal(t, "profile.avatar_size", e.Key)
}
