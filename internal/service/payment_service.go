package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/pawn"
	"github.com/nramli/gadai/gadai-backend/internal/util"
	"github.com/nramli/gadai/gadai-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// PaymentService routes payments through the pawn engine and persists the
// successor snapshot and the history record in one transaction.
type PaymentService struct {
	pool           *pgxpool.Pool
	loanRepo       domain.LoanRepository
	paymentRepo    domain.PaymentRepository
	eventPublisher websocket.EventPublisher
}

// NewPaymentService creates a new PaymentService. The pool may be nil in
// tests, in which case repository calls run without a transaction.
func NewPaymentService(pool *pgxpool.Pool, loanRepo domain.LoanRepository, paymentRepo domain.PaymentRepository) *PaymentService {
	return &PaymentService{
		pool:        pool,
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *PaymentService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PaymentService) publishEvent(branchID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(branchID, event)
	}
}

// ApplyPaymentInput contains input for applying a payment to a loan
type ApplyPaymentInput struct {
	Amount   int64
	Strategy pawn.Strategy
	AsOf     time.Time
	Notes    *string
}

// PaymentResult is the outcome of a persisted payment: the updated loan,
// the stored history record, and the engine's allocation breakdown.
type PaymentResult struct {
	Loan       *domain.Loan        `json:"loan"`
	Payment    *domain.Payment     `json:"payment"`
	Allocation pawn.AppliedPayment `json:"allocation"`
}

// ApplyPayment allocates amount across the loan's obligations as of the
// given date and persists the result. The engine's typed errors pass
// through so the handler can distinguish a missing strategy from bad input.
func (s *PaymentService) ApplyPayment(ctx context.Context, branchID int32, loanID int32, input ApplyPaymentInput) (*PaymentResult, error) {
	if !input.Strategy.Valid() {
		return nil, domain.ErrInvalidInput
	}

	loan, err := s.loanRepo.GetByID(branchID, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.IsActive() {
		return nil, domain.ErrLoanNotActive
	}

	asOf := util.DateOnly(input.AsOf)
	allocation, err := pawn.ApplyPayment(loan.Snapshot, input.Amount, input.Strategy, asOf)
	if err != nil {
		return nil, err
	}

	status := domain.LoanStatusActive
	if allocation.IsRedeemed {
		status = domain.LoanStatusRedeemed
	}

	payment := &domain.Payment{
		LoanID:             loan.ID,
		Amount:             input.Amount,
		AppliedToFee:       allocation.AppliedToFee,
		AppliedToInterest:  allocation.AppliedToInterest,
		AppliedToPrincipal: allocation.AppliedToPrincipal,
		Overpayment:        allocation.Overpayment,
		Period:             allocation.Period,
		Strategy:           allocation.Strategy,
		PaidAt:             asOf,
		ResultingDueDate:   allocation.NextPaymentDueDate,
		Redeeming:          allocation.IsRedeemed,
		Notes:              input.Notes,
	}

	updatedLoan, storedPayment, err := s.persist(ctx, loan, allocation.Snapshot, status, payment)
	if err != nil {
		return nil, err
	}

	s.publishEvent(branchID, websocket.PaymentApplied(storedPayment))
	if allocation.IsRedeemed {
		s.publishEvent(branchID, websocket.LoanRedeemed(updatedLoan))
		log.Info().
			Int32("loan_id", loan.ID).
			Str("ticket_no", loan.TicketNo).
			Msg("Loan redeemed")
	}

	return &PaymentResult{
		Loan:       updatedLoan,
		Payment:    storedPayment,
		Allocation: allocation,
	}, nil
}

// Redeem settles everything owed as of the given date in a single payment.
func (s *PaymentService) Redeem(ctx context.Context, branchID int32, loanID int32, asOf time.Time, notes *string) (*PaymentResult, error) {
	loan, err := s.loanRepo.GetByID(branchID, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.IsActive() {
		return nil, domain.ErrLoanNotActive
	}

	state := pawn.ComputePayoff(loan.Snapshot, util.DateOnly(asOf), nil)
	return s.ApplyPayment(ctx, branchID, loanID, ApplyPaymentInput{
		Amount:   state.TotalOwed,
		Strategy: pawn.StrategyNone,
		AsOf:     asOf,
		Notes:    notes,
	})
}

// PreviewPayment runs the allocator hypothetically for both strategies
// without persisting anything.
func (s *PaymentService) PreviewPayment(branchID int32, loanID int32, amount int64, asOf time.Time) (*pawn.PaymentPreview, error) {
	loan, err := s.loanRepo.GetByID(branchID, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.IsActive() {
		return nil, domain.ErrLoanNotActive
	}

	preview, err := pawn.PreviewOptions(loan.Snapshot, amount, util.DateOnly(asOf))
	if err != nil {
		return nil, err
	}
	return &preview, nil
}

// GetPaymentsByLoanID retrieves the payment history for a loan, validating
// branch ownership.
func (s *PaymentService) GetPaymentsByLoanID(branchID int32, loanID int32) ([]*domain.Payment, error) {
	if _, err := s.loanRepo.GetByID(branchID, loanID); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByLoanID(loanID)
}

// persist writes the successor snapshot and the payment record atomically.
// The version check turns a concurrent payment into domain.ErrStaleSnapshot
// instead of a silent double-application.
func (s *PaymentService) persist(ctx context.Context, loan *domain.Loan, snapshot pawn.Snapshot, status domain.LoanStatus, payment *domain.Payment) (*domain.Loan, *domain.Payment, error) {
	var tx pgx.Tx
	if s.pool != nil {
		var err error
		tx, err = s.pool.Begin(ctx)
		if err != nil {
			return nil, nil, err
		}
		defer tx.Rollback(ctx)
	}

	updatedLoan, err := s.loanRepo.UpdateSnapshotTx(tx, loan.ID, loan.Version, snapshot, status)
	if err != nil {
		return nil, nil, err
	}

	storedPayment, err := s.paymentRepo.CreateTx(tx, payment)
	if err != nil {
		return nil, nil, err
	}

	if tx != nil {
		if err := tx.Commit(ctx); err != nil {
			return nil, nil, err
		}
	}

	return updatedLoan, storedPayment, nil
}
