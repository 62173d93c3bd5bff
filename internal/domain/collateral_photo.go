package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CollateralPhoto is a stored photograph of a loan's pledged item.
// Each photo is kept in three renditions; the paths point into the
// photo object store.
type CollateralPhoto struct {
	ID           uuid.UUID `json:"id"`
	LoanID       int32     `json:"loan_id"`
	Label        *string   `json:"label,omitempty"`
	ThumbPath    string    `json:"-"`
	DisplayPath  string    `json:"-"`
	OriginalPath string    `json:"-"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

type CollateralPhotoRepository interface {
	Create(ctx context.Context, photo *CollateralPhoto) error
	GetByID(ctx context.Context, id uuid.UUID) (*CollateralPhoto, error)
	GetByLoanID(ctx context.Context, loanID int32) ([]*CollateralPhoto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
