package domain

import (
	"errors"
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/pawn"
)

var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentAmountInvalid  = errors.New("payment amount must be positive")
	ErrPaymentLoanIDRequired = errors.New("loan ID is required")
)

// Payment is the history record of one allocated payment: the full
// breakdown the engine produced, plus the period and due date the loan had
// at the moment it was applied.
type Payment struct {
	ID                 int32         `json:"id"`
	LoanID             int32         `json:"loanId"`
	Amount             int64         `json:"amount"`
	AppliedToFee       int64         `json:"appliedToFee"`
	AppliedToInterest  int64         `json:"appliedToInterest"`
	AppliedToPrincipal int64         `json:"appliedToPrincipal"`
	Overpayment        int64         `json:"overpayment"`
	Period             pawn.Period   `json:"period"`
	Strategy           pawn.Strategy `json:"strategy,omitempty"`
	PaidAt             time.Time     `json:"paidAt"`
	ResultingDueDate   time.Time     `json:"resultingDueDate"`
	Redeeming          bool          `json:"redeeming"`
	Notes              *string       `json:"notes,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
}

func (p *Payment) Validate() error {
	if p.LoanID <= 0 {
		return ErrPaymentLoanIDRequired
	}
	if p.Amount <= 0 {
		return ErrPaymentAmountInvalid
	}
	return nil
}

type PaymentRepository interface {
	// CreateTx inserts the record in the same transaction that persists
	// the successor snapshot.
	CreateTx(tx interface{}, payment *Payment) (*Payment, error)
	GetByID(id int32) (*Payment, error)
	GetByLoanID(loanID int32) ([]*Payment, error)
}
