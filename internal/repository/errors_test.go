package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/shift-tracker/internal/domain"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil, nil))
	assert.ErrorIs(t, mapError(pgx.ErrNoRows, nil), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(fmt.Errorf("scan: %w", pgx.ErrNoRows), nil), domain.ErrNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "uq_time_entries_open_per_user"}
	assert.ErrorIs(t, mapError(unique, domain.ErrAlreadyClockedIn), domain.ErrAlreadyClockedIn)

	check := &pgconn.PgError{Code: "23514"}
	mapped := mapError(check, domain.ErrAlreadyClockedIn)
	assert.Same(t, check, mapped)

	malformedID := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`}
	assert.ErrorIs(t, mapError(malformedID, nil), domain.ErrNotFound)

	danglingShift := &pgconn.PgError{Code: "23503", ConstraintName: "time_entries_shift_id_fkey"}
	assert.ErrorIs(t, mapError(danglingShift, domain.ErrAlreadyClockedIn), domain.ErrInvalidReference)

	dial := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	assert.ErrorIs(t, mapError(dial, nil), domain.ErrPersistenceUnavailable)
}

func TestListLimit(t *testing.T) {
	assert.Equal(t, 50, ListLimit(0, 50, 200))
	assert.Equal(t, 200, ListLimit(1000, 50, 200))
	assert.Equal(t, 10, ListLimit(10, 50, 200))
}
