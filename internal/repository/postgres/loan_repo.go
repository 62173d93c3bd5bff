package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/pawn"
)

// LoanRepository implements domain.LoanRepository using PostgreSQL.
// The pawn snapshot is stored denormalized as columns of the loans table
// so the engine state is queryable alongside the ticket.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

const loanColumns = `id, branch_id, customer_id, ticket_no, collateral_desc, status,
	principal, principal_remaining, monthly_interest_rate::text, onboarding_fee,
	onboarding_fee_remaining, onboarding_fee_paid, interest_paid_cycle,
	start_date, term_end_date, next_payment_due_date, current_cycle_start,
	version, notes, redeemed_at, forfeited_at, created_at, updated_at`

// rowScanner covers pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(row rowScanner) (*domain.Loan, error) {
	var loan domain.Loan
	var rate string
	err := row.Scan(
		&loan.ID, &loan.BranchID, &loan.CustomerID, &loan.TicketNo, &loan.CollateralDesc, &loan.Status,
		&loan.Snapshot.Principal, &loan.Snapshot.PrincipalRemaining, &rate, &loan.Snapshot.OnboardingFee,
		&loan.Snapshot.OnboardingFeeRemaining, &loan.Snapshot.OnboardingFeePaid, &loan.Snapshot.InterestPaidCycle,
		&loan.Snapshot.StartDate, &loan.Snapshot.TermEndDate, &loan.Snapshot.NextPaymentDueDate, &loan.Snapshot.CurrentCycleStart,
		&loan.Version, &loan.Notes, &loan.RedeemedAt, &loan.ForfeitedAt, &loan.CreatedAt, &loan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	loan.Snapshot.MonthlyInterestRate, err = decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interest rate: %w", err)
	}
	return &loan, nil
}

func collectLoans(rows pgx.Rows) ([]*domain.Loan, error) {
	defer rows.Close()
	var loans []*domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// Create inserts a new pawn ticket with its initial snapshot
func (r *LoanRepository) Create(loan *domain.Loan) (*domain.Loan, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO loans (
			branch_id, customer_id, ticket_no, collateral_desc, status,
			principal, principal_remaining, monthly_interest_rate, onboarding_fee,
			onboarding_fee_remaining, onboarding_fee_paid, interest_paid_cycle,
			start_date, term_end_date, next_payment_due_date, current_cycle_start,
			notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+loanColumns,
		loan.BranchID, loan.CustomerID, loan.TicketNo, loan.CollateralDesc, loan.Status,
		loan.Snapshot.Principal, loan.Snapshot.PrincipalRemaining, loan.Snapshot.MonthlyInterestRate.String(), loan.Snapshot.OnboardingFee,
		loan.Snapshot.OnboardingFeeRemaining, loan.Snapshot.OnboardingFeePaid, loan.Snapshot.InterestPaidCycle,
		loan.Snapshot.StartDate, loan.Snapshot.TermEndDate, loan.Snapshot.NextPaymentDueDate, loan.Snapshot.CurrentCycleStart,
		loan.Notes,
	)
	return scanLoan(row)
}

// GetByID retrieves a loan by ID within a branch
func (r *LoanRepository) GetByID(branchID int32, id int32) (*domain.Loan, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+loanColumns+` FROM loans WHERE branch_id = $1 AND id = $2`,
		branchID, id,
	)
	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// GetByTicketNo retrieves a loan by ticket number within a branch
func (r *LoanRepository) GetByTicketNo(branchID int32, ticketNo string) (*domain.Loan, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+loanColumns+` FROM loans WHERE branch_id = $1 AND ticket_no = $2`,
		branchID, ticketNo,
	)
	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// GetAllByBranch retrieves all loans for a branch, newest first
func (r *LoanRepository) GetAllByBranch(branchID int32) ([]*domain.Loan, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+loanColumns+` FROM loans WHERE branch_id = $1 ORDER BY id DESC`,
		branchID,
	)
	if err != nil {
		return nil, err
	}
	return collectLoans(rows)
}

// GetByStatus retrieves a branch's loans filtered by lifecycle state
func (r *LoanRepository) GetByStatus(branchID int32, status domain.LoanStatus) ([]*domain.Loan, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+loanColumns+` FROM loans WHERE branch_id = $1 AND status = $2 ORDER BY id DESC`,
		branchID, status,
	)
	if err != nil {
		return nil, err
	}
	return collectLoans(rows)
}

// GetAllActive retrieves active loans across all branches, for the
// forfeiture sweep
func (r *LoanRepository) GetAllActive() ([]*domain.Loan, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+loanColumns+` FROM loans WHERE status = $1 ORDER BY id`,
		domain.LoanStatusActive,
	)
	if err != nil {
		return nil, err
	}
	return collectLoans(rows)
}

// UpdateSnapshotTx persists a successor snapshot inside a transaction.
// The WHERE version clause makes concurrent payments lose cleanly: zero
// rows updated on an existing loan means someone else committed first.
func (r *LoanRepository) UpdateSnapshotTx(tx interface{}, id int32, expectedVersion int32, snapshot pawn.Snapshot, status domain.LoanStatus) (*domain.Loan, error) {
	ctx := context.Background()
	q := r.querier(tx)

	row := q.QueryRow(ctx, `
		UPDATE loans SET
			status = $1,
			principal_remaining = $2,
			monthly_interest_rate = $3::numeric,
			onboarding_fee_remaining = $4,
			onboarding_fee_paid = $5,
			interest_paid_cycle = $6,
			next_payment_due_date = $7,
			current_cycle_start = $8,
			version = version + 1,
			redeemed_at = CASE WHEN $1 = 'redeemed' AND redeemed_at IS NULL THEN now() ELSE redeemed_at END,
			updated_at = now()
		WHERE id = $9 AND version = $10
		RETURNING `+loanColumns,
		status,
		snapshot.PrincipalRemaining,
		snapshot.MonthlyInterestRate.String(),
		snapshot.OnboardingFeeRemaining,
		snapshot.OnboardingFeePaid,
		snapshot.InterestPaidCycle,
		snapshot.NextPaymentDueDate,
		snapshot.CurrentCycleStart,
		id, expectedVersion,
	)

	loan, err := scanLoan(row)
	if err == nil {
		return loan, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Distinguish a stale version from a missing loan
	var exists bool
	if checkErr := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM loans WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
		return nil, checkErr
	}
	if exists {
		return nil, domain.ErrStaleSnapshot
	}
	return nil, domain.ErrLoanNotFound
}

// MarkForfeited marks a loan as forfeited
func (r *LoanRepository) MarkForfeited(id int32, at time.Time) error {
	tag, err := r.pool.Exec(context.Background(), `
		UPDATE loans SET
			status = $1,
			forfeited_at = $2,
			version = version + 1,
			updated_at = now()
		WHERE id = $3 AND status = $4`,
		domain.LoanStatusForfeited, at, id, domain.LoanStatusActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}

// querier returns the transaction when one is passed, the pool otherwise
func (r *LoanRepository) querier(tx interface{}) querier {
	if pgxTx, ok := tx.(pgx.Tx); ok && pgxTx != nil {
		return pgxTx
	}
	return r.pool
}
