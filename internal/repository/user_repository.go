package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-tracker/internal/domain"
)

// UserFilter narrows profile listings. Search matches name, email or department name.
type UserFilter struct {
	Search   string
	IsActive *bool
	BranchID *string
	Limit    int
}

// UserProfile is a user joined with its department name for directory views.
type UserProfile struct {
	domain.User
	DepartmentName string
}

// UserRepository defines persistence access for user profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]UserProfile, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `u.id, u.email, u.first_name, u.last_name, u.password_hash, u.branch_id,
               u.department_id, u.phone, u.hourly_rate, u.hire_date, u.is_active, u.created_at, u.updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, first_name, last_name, password_hash, branch_id, department_id,
            phone, hourly_rate, hire_date, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.BranchID,
		user.DepartmentID,
		user.Phone,
		user.HourlyRate,
		user.HireDate,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapError(err, domain.ErrEmailTaken)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET first_name=$1, last_name=$2, password_hash=$3, branch_id=$4,
            department_id=$5, phone=$6, hourly_rate=$7, hire_date=$8, is_active=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.BranchID,
		user.DepartmentID,
		user.Phone,
		user.HourlyRate,
		user.HireDate,
		user.IsActive,
		user.ID,
	)
	if err != nil {
		return mapError(err, nil)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id=$1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.email=$1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]UserProfile, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		clauses = append(clauses, fmt.Sprintf("u.is_active=$%d", len(args)))
	}
	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		clauses = append(clauses, fmt.Sprintf("u.branch_id=$%d", len(args)))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, "%"+strings.ToLower(term)+"%")
		p := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(u.first_name || ' ' || u.last_name) LIKE %s OR LOWER(u.email) LIKE %s OR LOWER(COALESCE(d.name, '')) LIKE %s)",
			p, p, p))
	}

	query := fmt.Sprintf(`SELECT %s, COALESCE(d.name, '')
             FROM users u LEFT JOIN departments d ON d.id = u.department_id
             WHERE %s ORDER BY u.first_name, u.last_name LIMIT %d`,
		userColumns, strings.Join(clauses, " AND "), ListLimit(filter.Limit, 100, 1000))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	var result []UserProfile
	for rows.Next() {
		var p UserProfile
		if err := rows.Scan(append(userTargets(&p.User), &p.DepartmentName)...); err != nil {
			return nil, mapError(err, nil)
		}
		result = append(result, p)
	}
	return result, mapError(rows.Err(), nil)
}

func userTargets(user *domain.User) []any {
	return []any{
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.BranchID,
		&user.DepartmentID,
		&user.Phone,
		&user.HourlyRate,
		&user.HireDate,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(userTargets(&user)...); err != nil {
		return nil, err
	}
	return &user, nil
}
