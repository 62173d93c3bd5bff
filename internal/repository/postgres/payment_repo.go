package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
)

// PaymentRepository implements domain.PaymentRepository using PostgreSQL
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const paymentColumns = `id, loan_id, amount, applied_to_fee, applied_to_interest,
	applied_to_principal, overpayment, period, strategy, paid_at,
	resulting_due_date, redeeming, notes, created_at`

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.ID, &p.LoanID, &p.Amount, &p.AppliedToFee, &p.AppliedToInterest,
		&p.AppliedToPrincipal, &p.Overpayment, &p.Period, &p.Strategy, &p.PaidAt,
		&p.ResultingDueDate, &p.Redeeming, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateTx inserts a payment record, inside the caller's transaction when
// one is given
func (r *PaymentRepository) CreateTx(tx interface{}, payment *domain.Payment) (*domain.Payment, error) {
	row := r.querier(tx).QueryRow(context.Background(), `
		INSERT INTO payments (
			loan_id, amount, applied_to_fee, applied_to_interest,
			applied_to_principal, overpayment, period, strategy, paid_at,
			resulting_due_date, redeeming, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+paymentColumns,
		payment.LoanID, payment.Amount, payment.AppliedToFee, payment.AppliedToInterest,
		payment.AppliedToPrincipal, payment.Overpayment, payment.Period, payment.Strategy, payment.PaidAt,
		payment.ResultingDueDate, payment.Redeeming, payment.Notes,
	)
	return scanPayment(row)
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(id int32) (*domain.Payment, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// GetByLoanID retrieves a loan's payment history, oldest first
func (r *PaymentRepository) GetByLoanID(loanID int32) ([]*domain.Payment, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+paymentColumns+` FROM payments WHERE loan_id = $1 ORDER BY id`, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) querier(tx interface{}) querier {
	if pgxTx, ok := tx.(pgx.Tx); ok && pgxTx != nil {
		return pgxTx
	}
	return r.pool
}
