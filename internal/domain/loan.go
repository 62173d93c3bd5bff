package domain

import (
	"errors"
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/pawn"
	"github.com/shopspring/decimal"
)

var (
	ErrLoanNotFound            = errors.New("loan not found")
	ErrLoanNotActive           = errors.New("loan is not active")
	ErrLoanTicketNoEmpty       = errors.New("ticket number is required")
	ErrLoanTicketNoTooLong     = errors.New("ticket number must be 40 characters or less")
	ErrLoanPrincipalInvalid    = errors.New("loan principal must be positive")
	ErrLoanInterestRateInvalid = errors.New("monthly interest rate must be between 0 and 1")
	ErrLoanFeeInvalid          = errors.New("onboarding fee must not be negative")
	ErrLoanCustomerRequired    = errors.New("customer is required")
	ErrLoanCollateralEmpty     = errors.New("collateral description is required")
)

// LoanStatus is the lifecycle state of a pawn loan. Terminal states are
// redeemed and forfeited.
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusRedeemed  LoanStatus = "redeemed"
	LoanStatusForfeited LoanStatus = "forfeited"
)

// Loan is a pawn ticket: the pledged collateral, the customer, and the
// engine snapshot every payoff calculation runs against.
type Loan struct {
	ID             int32         `json:"id"`
	BranchID       int32         `json:"branchId"`
	CustomerID     int32         `json:"customerId"`
	TicketNo       string        `json:"ticketNo"`
	CollateralDesc string        `json:"collateralDesc"`
	Status         LoanStatus    `json:"status"`
	Snapshot       pawn.Snapshot `json:"snapshot"`
	// Version guards the snapshot's read-modify-write: a payment only
	// commits against the version it was computed from.
	Version     int32      `json:"version"`
	Notes       *string    `json:"notes,omitempty"`
	RedeemedAt  *time.Time `json:"redeemedAt,omitempty"`
	ForfeitedAt *time.Time `json:"forfeitedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (l *Loan) Validate() error {
	if l.TicketNo == "" {
		return ErrLoanTicketNoEmpty
	}
	if len(l.TicketNo) > 40 {
		return ErrLoanTicketNoTooLong
	}
	if l.CustomerID <= 0 {
		return ErrLoanCustomerRequired
	}
	if l.CollateralDesc == "" {
		return ErrLoanCollateralEmpty
	}
	if l.Snapshot.Principal <= 0 {
		return ErrLoanPrincipalInvalid
	}
	rate := l.Snapshot.MonthlyInterestRate
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrLoanInterestRateInvalid
	}
	if l.Snapshot.OnboardingFee < 0 {
		return ErrLoanFeeInvalid
	}
	return nil
}

// IsActive reports whether the loan can still accept payments.
func (l *Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

type LoanRepository interface {
	Create(loan *Loan) (*Loan, error)
	GetByID(branchID int32, id int32) (*Loan, error)
	GetByTicketNo(branchID int32, ticketNo string) (*Loan, error)
	GetAllByBranch(branchID int32) ([]*Loan, error)
	GetByStatus(branchID int32, status LoanStatus) ([]*Loan, error)
	// GetAllActive spans branches; used by the forfeiture scanner.
	GetAllActive() ([]*Loan, error)
	// UpdateSnapshotTx persists a successor snapshot inside a transaction,
	// failing with ErrStaleSnapshot unless the stored version still equals
	// expectedVersion.
	UpdateSnapshotTx(tx interface{}, id int32, expectedVersion int32, snapshot pawn.Snapshot, status LoanStatus) (*Loan, error)
	MarkForfeited(id int32, at time.Time) error
}
