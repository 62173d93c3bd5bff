package service

import (
	"strings"
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/pawn"
	"github.com/nramli/gadai/gadai-backend/internal/util"
	"github.com/nramli/gadai/gadai-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// LoanService handles pawn ticket business logic
type LoanService struct {
	loanRepo       domain.LoanRepository
	customerRepo   domain.CustomerRepository
	eventPublisher websocket.EventPublisher
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo domain.LoanRepository, customerRepo domain.CustomerRepository) *LoanService {
	return &LoanService{
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LoanService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateLoanInput contains input for writing a new pawn ticket
type CreateLoanInput struct {
	CustomerID          int32
	TicketNo            string
	CollateralDesc      string
	Principal           int64
	MonthlyInterestRate decimal.Decimal
	OnboardingFee       int64
	StartDate           time.Time
	Notes               *string
}

// CreateLoan writes a new pawn ticket with a freshly derived snapshot:
// term end and first due date follow from the start date alone.
func (s *LoanService) CreateLoan(branchID int32, input CreateLoanInput) (*domain.Loan, error) {
	// Validate customer exists in this branch
	if input.CustomerID <= 0 {
		return nil, domain.ErrLoanCustomerRequired
	}
	if _, err := s.customerRepo.GetByID(branchID, input.CustomerID); err != nil {
		return nil, err
	}

	loan := &domain.Loan{
		BranchID:       branchID,
		CustomerID:     input.CustomerID,
		TicketNo:       strings.TrimSpace(input.TicketNo),
		CollateralDesc: strings.TrimSpace(input.CollateralDesc),
		Status:         domain.LoanStatusActive,
		Snapshot: pawn.NewSnapshot(
			input.Principal,
			input.MonthlyInterestRate,
			input.OnboardingFee,
			input.StartDate,
		),
		Notes: input.Notes,
	}

	if err := loan.Validate(); err != nil {
		return nil, err
	}

	created, err := s.loanRepo.Create(loan)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(branchID, websocket.LoanCreated(created))
	}

	return created, nil
}

// GetLoans retrieves all loans for a branch
func (s *LoanService) GetLoans(branchID int32) ([]*domain.Loan, error) {
	return s.loanRepo.GetAllByBranch(branchID)
}

// GetLoansByStatus retrieves a branch's loans filtered by lifecycle state
func (s *LoanService) GetLoansByStatus(branchID int32, status domain.LoanStatus) ([]*domain.Loan, error) {
	return s.loanRepo.GetByStatus(branchID, status)
}

// GetLoanByID retrieves a loan by ID within a branch
func (s *LoanService) GetLoanByID(branchID int32, id int32) (*domain.Loan, error) {
	return s.loanRepo.GetByID(branchID, id)
}

// GetLoanByTicketNo retrieves a loan by its ticket number within a branch
func (s *LoanService) GetLoanByTicketNo(branchID int32, ticketNo string) (*domain.Loan, error) {
	return s.loanRepo.GetByTicketNo(branchID, strings.TrimSpace(ticketNo))
}

// PayoffQuote is a loan together with what it owes on a reference date.
type PayoffQuote struct {
	Loan  *domain.Loan
	AsOf  time.Time
	State pawn.PayoffState
}

// QuotePayoff computes the payoff state for a loan as of the given date.
// forfeitureThresholdDays mirrors the engine parameter: nil disables the
// forfeiture countdown in the quote.
func (s *LoanService) QuotePayoff(branchID int32, id int32, asOf time.Time, forfeitureThresholdDays *int) (*PayoffQuote, error) {
	loan, err := s.loanRepo.GetByID(branchID, id)
	if err != nil {
		return nil, err
	}
	if !loan.IsActive() {
		return nil, domain.ErrLoanNotActive
	}

	asOf = util.DateOnly(asOf)
	return &PayoffQuote{
		Loan:  loan,
		AsOf:  asOf,
		State: pawn.ComputePayoff(loan.Snapshot, asOf, forfeitureThresholdDays),
	}, nil
}
