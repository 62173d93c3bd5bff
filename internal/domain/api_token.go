package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAPITokenNotFound = errors.New("api token not found")
	ErrTooManyAPITokens = errors.New("too many active api tokens for this branch")
)

// APIToken is a branch-scoped token for programmatic access, used by POS
// terminal integrations.
type APIToken struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	BranchID    int32      `json:"branchId"`
	Description string     `json:"description"`
	TokenHash   string     `json:"-"` // Never expose hash
	TokenPrefix string     `json:"tokenPrefix"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	RevokedAt   *time.Time `json:"revokedAt,omitempty"`
}

// APITokenRepository defines the interface for API token persistence
type APITokenRepository interface {
	Create(ctx context.Context, token *APIToken) error
	GetByBranch(ctx context.Context, branchID int32) ([]*APIToken, error)
	GetByID(ctx context.Context, branchID int32, id uuid.UUID) (*APIToken, error)
	GetByHash(ctx context.Context, hash string) (*APIToken, error)
	Revoke(ctx context.Context, branchID int32, id uuid.UUID) error
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
}
