package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"atelier-backend/internal/apperr"
)

func TestKindAndStatus(t *testing.T) {
	cases := []struct {
		err    error
		kind   string
		status int
	}{
		{apperr.Unauthenticated("bad token"), "unauthenticated", http.StatusUnauthorized},
		{apperr.Forbidden("nope"), "forbidden", http.StatusForbidden},
		{apperr.NotFound("item not found"), "not_found", http.StatusNotFound},
		{apperr.InvalidInput("bad field"), "invalid_input", http.StatusBadRequest},
		{apperr.Dependency("db down"), "dependency_failure", http.StatusInternalServerError},
		{errors.New("plain"), "internal", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, apperr.Kind(tc.err))
		assert.Equal(t, tc.status, apperr.Status(tc.err))
	}
}

func TestErrorsIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading item: %w", apperr.NotFound("item not found"))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, apperr.Status(err))
}

func TestMessageFormatting(t *testing.T) {
	err := apperr.InvalidInput("file type %q is not allowed", "exe")
	assert.Equal(t, `file type "exe" is not allowed`, err.Error())
}
