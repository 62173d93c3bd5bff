package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// PhotoRepository stores collateral photo objects and produces
// short-lived download URLs for them.
type PhotoRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, objectPath string) error
	PresignURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// ObjectPath builds the canonical object key for a photo variant.
// Photos are namespaced by branch and loan so that bucket lifecycle
// rules can be applied per tenant.
func ObjectPath(branchID int32, loanID int32, photoID uuid.UUID, variant string) string {
	return fmt.Sprintf("branches/%d/loans/%d/photos/%s/%s.jpg", branchID, loanID, photoID, variant)
}
