package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		err    *HTTPError
		status int
	}{
		{BadRequest("bad"), http.StatusBadRequest},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status)
	}
}

func TestAs_ThroughWrapping(t *testing.T) {
	cause := errors.New("driver exploded")
	err := fmt.Errorf("create offer: %w", NotFound("Offer not found").Wrap(cause))

	he, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Offer not found: driver exploded", he.Error())
}

func TestWithDetails_DoesNotMutateOriginal(t *testing.T) {
	base := BadRequest("Validation failed")
	withDetails := base.WithDetails([]string{"x"})

	assert.Nil(t, base.Details)
	assert.Equal(t, []string{"x"}, withDetails.Details)
}

func TestAs_PlainError(t *testing.T) {
	_, ok := As(errors.New("plain"))
	assert.False(t, ok)
}
