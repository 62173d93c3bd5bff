package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
)

// BranchRepository implements domain.BranchRepository using PostgreSQL
type BranchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository creates a new BranchRepository
func NewBranchRepository(pool *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{pool: pool}
}

const branchColumns = `id, name, code, created_at, updated_at`

func scanBranch(row rowScanner) (*domain.Branch, error) {
	var b domain.Branch
	err := row.Scan(&b.ID, &b.Name, &b.Code, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByID retrieves a branch by ID
func (r *BranchRepository) GetByID(id int32) (*domain.Branch, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+branchColumns+` FROM branches WHERE id = $1`, id)
	branch, err := scanBranch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, err
	}
	return branch, nil
}

// GetByUserAuth0ID retrieves the branch a staff user belongs to
func (r *BranchRepository) GetByUserAuth0ID(auth0ID string) (*domain.Branch, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT b.id, b.name, b.code, b.created_at, b.updated_at
		FROM branches b
		JOIN users u ON u.branch_id = b.id
		WHERE u.auth0_id = $1`,
		auth0ID,
	)
	branch, err := scanBranch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, err
	}
	return branch, nil
}

// GetAll retrieves all branches ordered by ID
func (r *BranchRepository) GetAll() ([]*domain.Branch, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+branchColumns+` FROM branches ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*domain.Branch
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return branches, rows.Err()
}

// Create creates a new branch
func (r *BranchRepository) Create(branch *domain.Branch) (*domain.Branch, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO branches (name, code) VALUES ($1, $2)
		RETURNING `+branchColumns,
		branch.Name, branch.Code,
	)
	return scanBranch(row)
}

// Update updates a branch's details
func (r *BranchRepository) Update(branch *domain.Branch) (*domain.Branch, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE branches SET name = $1, code = $2, updated_at = now()
		WHERE id = $3
		RETURNING `+branchColumns,
		branch.Name, branch.Code, branch.ID,
	)
	updated, err := scanBranch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBranchNotFound
		}
		return nil, err
	}
	return updated, nil
}
