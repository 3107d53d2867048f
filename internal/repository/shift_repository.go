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

// ShiftFilter narrows schedule listings. StartFrom is inclusive, StartTo exclusive.
type ShiftFilter struct {
	EmployeeID *string
	BranchID   *string
	Statuses   []domain.ShiftStatus
	StartFrom  *time.Time
	StartTo    *time.Time
	Limit      int
}

// ShiftRepository persists scheduled shifts.
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) error
	GetByID(ctx context.Context, id string) (*domain.Shift, error)
	// UpdateStatus moves the shift to next only if it is still in from.
	UpdateStatus(ctx context.Context, id string, from, next domain.ShiftStatus) (*domain.Shift, error)
	List(ctx context.Context, filter ShiftFilter) ([]domain.Shift, error)
}

type shiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository instantiates repository.
func NewShiftRepository(pool *pgxpool.Pool) ShiftRepository {
	return &shiftRepository{pool: pool}
}

const shiftColumns = `id, title, employee_id, branch_id, department_id, start_time, end_time,
               break_duration, hourly_rate, status, notes, created_by, created_at, updated_at`

func (r *shiftRepository) Create(ctx context.Context, shift *domain.Shift) error {
	const query = `
        INSERT INTO shifts (title, employee_id, branch_id, department_id, start_time, end_time,
            break_duration, hourly_rate, status, notes, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		shift.Title,
		shift.EmployeeID,
		shift.BranchID,
		shift.DepartmentID,
		shift.StartTime,
		shift.EndTime,
		shift.BreakDuration,
		shift.HourlyRate,
		shift.Status,
		shift.Notes,
		shift.CreatedBy,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt)
	return mapError(err, nil)
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id=$1`
	shift, err := scanShift(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return shift, nil
}

func (r *shiftRepository) UpdateStatus(ctx context.Context, id string, from, next domain.ShiftStatus) (*domain.Shift, error) {
	query := `UPDATE shifts SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3 RETURNING ` + shiftColumns
	shift, err := scanShift(r.pool.QueryRow(ctx, query, next, id, from))
	if err == nil {
		return shift, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err, nil)
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, domain.ErrInvalidTransition
}

func (r *shiftRepository) List(ctx context.Context, filter ShiftFilter) ([]domain.Shift, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id=$%d", len(args)))
	}
	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		clauses = append(clauses, fmt.Sprintf("branch_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.StartFrom != nil {
		args = append(args, *filter.StartFrom)
		clauses = append(clauses, fmt.Sprintf("start_time >= $%d", len(args)))
	}
	if filter.StartTo != nil {
		args = append(args, *filter.StartTo)
		clauses = append(clauses, fmt.Sprintf("start_time < $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM shifts WHERE %s ORDER BY start_time ASC LIMIT %d`,
		shiftColumns, strings.Join(clauses, " AND "), ListLimit(filter.Limit, 200, 1000))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	var result []domain.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, mapError(err, nil)
		}
		result = append(result, *shift)
	}
	return result, mapError(rows.Err(), nil)
}

func scanShift(row pgx.Row) (*domain.Shift, error) {
	var shift domain.Shift
	if err := row.Scan(
		&shift.ID,
		&shift.Title,
		&shift.EmployeeID,
		&shift.BranchID,
		&shift.DepartmentID,
		&shift.StartTime,
		&shift.EndTime,
		&shift.BreakDuration,
		&shift.HourlyRate,
		&shift.Status,
		&shift.Notes,
		&shift.CreatedBy,
		&shift.CreatedAt,
		&shift.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shift, nil
}
