package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-tracker/internal/domain"
)

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context, branchID *string) ([]domain.Department, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (name, branch_id)
        VALUES ($1,$2)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, dept.Name, dept.BranchID).Scan(&dept.ID, &dept.CreatedAt)
	return mapError(err, nil)
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	const query = `SELECT id, name, branch_id, created_at FROM departments WHERE id=$1`
	var dept domain.Department
	if err := r.pool.QueryRow(ctx, query, id).Scan(&dept.ID, &dept.Name, &dept.BranchID, &dept.CreatedAt); err != nil {
		return nil, mapError(err, nil)
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, branchID *string) ([]domain.Department, error) {
	query := `SELECT id, name, branch_id, created_at FROM departments`
	args := []any{}
	if branchID != nil {
		args = append(args, *branchID)
		query += fmt.Sprintf(" WHERE branch_id=$%d", len(args))
	}
	query += " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.BranchID, &dept.CreatedAt); err != nil {
			return nil, mapError(err, nil)
		}
		result = append(result, dept)
	}
	return result, mapError(rows.Err(), nil)
}
