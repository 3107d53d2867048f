package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-tracker/internal/domain"
)

// BranchRepository manages branch persistence.
type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) error
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	List(ctx context.Context) ([]domain.Branch, error)
}

type branchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository builds the repository.
func NewBranchRepository(pool *pgxpool.Pool) BranchRepository {
	return &branchRepository{pool: pool}
}

func (r *branchRepository) Create(ctx context.Context, branch *domain.Branch) error {
	const query = `
        INSERT INTO branches (name, address, phone, manager_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		branch.Name,
		branch.Address,
		branch.Phone,
		branch.ManagerID,
	).Scan(&branch.ID, &branch.CreatedAt, &branch.UpdatedAt)
	return mapError(err, nil)
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	const query = `
        SELECT id, name, address, phone, manager_id, created_at, updated_at
        FROM branches WHERE id=$1`
	var b domain.Branch
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Address, &b.Phone, &b.ManagerID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, mapError(err, nil)
	}
	return &b, nil
}

func (r *branchRepository) List(ctx context.Context) ([]domain.Branch, error) {
	const query = `
        SELECT id, name, address, phone, manager_id, created_at, updated_at
        FROM branches ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	var result []domain.Branch
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.ManagerID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, mapError(err, nil)
		}
		result = append(result, b)
	}
	return result, mapError(rows.Err(), nil)
}
