package domain

import "time"

// Branch is a pawnshop outlet. Every loan, customer and staff member is
// scoped to exactly one branch.
type Branch struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BranchRepository defines the interface for branch persistence operations
type BranchRepository interface {
	GetByID(id int32) (*Branch, error)
	GetByUserAuth0ID(auth0ID string) (*Branch, error)
	GetAll() ([]*Branch, error)
	Create(branch *Branch) (*Branch, error)
	Update(branch *Branch) (*Branch, error)
}
