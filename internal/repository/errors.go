package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/shift-tracker/internal/domain"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	// Raised for ids that are not valid UUIDs; such an id cannot match any row.
	invalidTextRepresentation = "22P02"
)

// mapError translates driver errors into domain sentinels. onConflict is returned for
// unique violations when non-nil. Malformed ids read as not found and dangling foreign keys
// as invalid references. Anything that is not a server-side error is treated as the store
// being unreachable.
func mapError(err error, onConflict error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolation && onConflict != nil:
			return onConflict
		case pgErr.Code == invalidTextRepresentation:
			return domain.ErrNotFound
		case pgErr.Code == foreignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidReference, pgErr.ConstraintName)
		}
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistenceUnavailable, err)
}

// ListLimit clamps a caller supplied page size.
func ListLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
