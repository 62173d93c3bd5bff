package domain

import (
	"errors"
	"time"
)

var (
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrCustomerNameEmpty       = errors.New("customer name is required")
	ErrCustomerNameTooLong     = errors.New("customer name must be 200 characters or less")
	ErrCustomerNationalIDEmpty = errors.New("customer national ID is required")
)

// Customer is a pledger registered at a branch.
type Customer struct {
	ID         int32     `json:"id"`
	BranchID   int32     `json:"branchId"`
	Name       string    `json:"name"`
	NationalID string    `json:"nationalId"`
	Phone      *string   `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return ErrCustomerNameEmpty
	}
	if len(c.Name) > 200 {
		return ErrCustomerNameTooLong
	}
	if c.NationalID == "" {
		return ErrCustomerNationalIDEmpty
	}
	return nil
}

type CustomerRepository interface {
	Create(customer *Customer) (*Customer, error)
	GetByID(branchID int32, id int32) (*Customer, error)
	GetByNationalID(branchID int32, nationalID string) (*Customer, error)
	GetAllByBranch(branchID int32) ([]*Customer, error)
	Update(customer *Customer) (*Customer, error)
}
