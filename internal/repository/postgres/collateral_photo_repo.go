package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
)

// CollateralPhotoRepository implements domain.CollateralPhotoRepository
// using PostgreSQL
type CollateralPhotoRepository struct {
	pool *pgxpool.Pool
}

// NewCollateralPhotoRepository creates a new CollateralPhotoRepository
func NewCollateralPhotoRepository(pool *pgxpool.Pool) *CollateralPhotoRepository {
	return &CollateralPhotoRepository{pool: pool}
}

const photoColumns = `id, loan_id, label, thumb_path, display_path, original_path,
	content_type, size_bytes, created_at`

func scanPhoto(row rowScanner) (*domain.CollateralPhoto, error) {
	var p domain.CollateralPhoto
	err := row.Scan(&p.ID, &p.LoanID, &p.Label, &p.ThumbPath, &p.DisplayPath, &p.OriginalPath,
		&p.ContentType, &p.SizeBytes, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create records a stored photo
func (r *CollateralPhotoRepository) Create(ctx context.Context, photo *domain.CollateralPhoto) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO collateral_photos (id, loan_id, label, thumb_path, display_path, original_path, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		photo.ID, photo.LoanID, photo.Label, photo.ThumbPath, photo.DisplayPath, photo.OriginalPath,
		photo.ContentType, photo.SizeBytes,
	)
	return row.Scan(&photo.CreatedAt)
}

// GetByID retrieves a photo record by ID
func (r *CollateralPhotoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CollateralPhoto, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+photoColumns+` FROM collateral_photos WHERE id = $1`, id)
	photo, err := scanPhoto(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return photo, nil
}

// GetByLoanID retrieves a loan's photos, oldest first
func (r *CollateralPhotoRepository) GetByLoanID(ctx context.Context, loanID int32) ([]*domain.CollateralPhoto, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+photoColumns+` FROM collateral_photos WHERE loan_id = $1 ORDER BY created_at, id`,
		loanID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*domain.CollateralPhoto
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

// Delete removes a photo record
func (r *CollateralPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM collateral_photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}
