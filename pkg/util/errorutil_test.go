package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/shift-tracker/internal/domain"
)

func TestToDomainErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{domain.ErrAlreadyClockedIn, "ALREADY_CLOCKED_IN", http.StatusConflict},
		{domain.ErrInvalidTransition, "INVALID_TRANSITION", http.StatusConflict},
		{domain.ErrNonMonotonicTime, "NON_MONOTONIC_TIME", http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: dial tcp", domain.ErrPersistenceUnavailable), "PERSISTENCE_UNAVAILABLE", http.StatusServiceUnavailable},
		{domain.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
		{fmt.Errorf("%w: time_entries_shift_id_fkey", domain.ErrInvalidReference), "VALIDATION_FAILED", http.StatusBadRequest},
		{errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got := ToDomainError(tc.err)
		assert.Equal(t, tc.code, got.Code, tc.err.Error())
		assert.Equal(t, tc.status, got.HTTPStatus, tc.err.Error())
		assert.ErrorIs(t, got, tc.err)
	}
}

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	original := NewForbidden("insufficient role", map[string]any{"required_role": "admin"})
	got := ToDomainError(fmt.Errorf("wrapped: %w", original))
	assert.Equal(t, "FORBIDDEN", got.Code)
	assert.Equal(t, "admin", got.Details["required_role"])
	assert.Nil(t, MapError(nil))
}
