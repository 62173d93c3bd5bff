package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, branch_id, auth0_id, email, name, picture_url, created_at, updated_at`

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.BranchID, &u.Auth0ID, &u.Email, &u.Name, &u.PictureURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (r *UserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE auth0_id = $1`, auth0ID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create creates a new user
func (r *UserRepository) Create(user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO users (branch_id, auth0_id, email, name, picture_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		user.BranchID, user.Auth0ID, user.Email, user.Name, user.PictureURL,
	)
	return scanUser(row)
}

// Update updates an existing user
func (r *UserRepository) Update(user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE users SET email = $1, name = $2, picture_url = $3, updated_at = now()
		WHERE id = $4
		RETURNING `+userColumns,
		user.Email, user.Name, user.PictureURL, user.ID,
	)
	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return updated, nil
}
