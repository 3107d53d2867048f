package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-tracker/internal/domain"
)

// TimeEntryFilter narrows entry listings.
type TimeEntryFilter struct {
	UserID      *string
	Statuses    []domain.TimeEntryStatus
	CheckInFrom *time.Time
	CheckInTo   *time.Time
	Limit       int
}

// TimeEntryRepository persists attendance sessions.
type TimeEntryRepository interface {
	// Create inserts a new open entry, failing with domain.ErrAlreadyClockedIn when the
	// user already has one.
	Create(ctx context.Context, entry *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	FindOpenByUser(ctx context.Context, userID string) (*domain.TimeEntry, error)
	// Transition writes the mutable fields of entry only if the stored status is still from.
	Transition(ctx context.Context, entry *domain.TimeEntry, from domain.TimeEntryStatus) error
	List(ctx context.Context, filter TimeEntryFilter) ([]domain.TimeEntry, error)
}

type timeEntryRepository struct {
	pool *pgxpool.Pool
}

// NewTimeEntryRepository returns a Postgres-backed implementation.
func NewTimeEntryRepository(pool *pgxpool.Pool) TimeEntryRepository {
	return &timeEntryRepository{pool: pool}
}

const timeEntryColumns = `id, user_id, shift_id, check_in_time, check_out_time, check_in_location,
               check_out_location, break_start_time, break_end_time, break_seconds, total_hours,
               status, notes, created_at, updated_at`

func (r *timeEntryRepository) Create(ctx context.Context, entry *domain.TimeEntry) error {
	const query = `
        INSERT INTO time_entries (user_id, shift_id, check_in_time, check_in_location, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.ShiftID,
		entry.CheckInTime,
		entry.CheckInLocation,
		entry.Status,
		entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	return mapError(err, domain.ErrAlreadyClockedIn)
}

func (r *timeEntryRepository) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id=$1`
	entry, err := scanTimeEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return entry, nil
}

func (r *timeEntryRepository) FindOpenByUser(ctx context.Context, userID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE user_id=$1 AND status <> 'checked_out'`
	entry, err := scanTimeEntry(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return entry, nil
}

func (r *timeEntryRepository) Transition(ctx context.Context, entry *domain.TimeEntry, from domain.TimeEntryStatus) error {
	const query = `
        UPDATE time_entries SET check_out_time=$1, check_out_location=$2, break_start_time=$3,
            break_end_time=$4, break_seconds=$5, total_hours=$6, status=$7, notes=$8, updated_at=NOW()
        WHERE id=$9 AND status=$10
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		entry.CheckOutTime,
		entry.CheckOutLocation,
		entry.BreakStartTime,
		entry.BreakEndTime,
		entry.BreakSeconds,
		entry.TotalHours,
		entry.Status,
		entry.Notes,
		entry.ID,
		from,
	).Scan(&entry.UpdatedAt)
	if err == nil {
		return nil
	}
	mapped := mapError(err, nil)
	if !errors.Is(mapped, domain.ErrNotFound) {
		return mapped
	}
	// No row matched: either the id is unknown or another request moved the entry first.
	if _, err := r.GetByID(ctx, entry.ID); err != nil {
		return err
	}
	return domain.ErrInvalidTransition
}

func (r *timeEntryRepository) List(ctx context.Context, filter TimeEntryFilter) ([]domain.TimeEntry, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CheckInFrom != nil {
		args = append(args, *filter.CheckInFrom)
		clauses = append(clauses, fmt.Sprintf("check_in_time >= $%d", len(args)))
	}
	if filter.CheckInTo != nil {
		args = append(args, *filter.CheckInTo)
		clauses = append(clauses, fmt.Sprintf("check_in_time < $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM time_entries WHERE %s ORDER BY check_in_time DESC LIMIT %d`,
		timeEntryColumns, strings.Join(clauses, " AND "), ListLimit(filter.Limit, 50, 500))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	var result []domain.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, mapError(err, nil)
		}
		result = append(result, *entry)
	}
	return result, mapError(rows.Err(), nil)
}

func scanTimeEntry(row pgx.Row) (*domain.TimeEntry, error) {
	var entry domain.TimeEntry
	if err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.ShiftID,
		&entry.CheckInTime,
		&entry.CheckOutTime,
		&entry.CheckInLocation,
		&entry.CheckOutLocation,
		&entry.BreakStartTime,
		&entry.BreakEndTime,
		&entry.BreakSeconds,
		&entry.TotalHours,
		&entry.Status,
		&entry.Notes,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}
