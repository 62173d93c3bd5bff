package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
)

// CustomerRepository implements domain.CustomerRepository using PostgreSQL
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = `id, branch_id, name, national_id, phone, created_at, updated_at`

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.BranchID, &c.Name, &c.NationalID, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create registers a new customer
func (r *CustomerRepository) Create(customer *domain.Customer) (*domain.Customer, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO customers (branch_id, name, national_id, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING `+customerColumns,
		customer.BranchID, customer.Name, customer.NationalID, customer.Phone,
	)
	return scanCustomer(row)
}

// GetByID retrieves a customer by ID within a branch
func (r *CustomerRepository) GetByID(branchID int32, id int32) (*domain.Customer, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+customerColumns+` FROM customers WHERE branch_id = $1 AND id = $2`,
		branchID, id,
	)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// GetByNationalID retrieves a customer by national ID within a branch
func (r *CustomerRepository) GetByNationalID(branchID int32, nationalID string) (*domain.Customer, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+customerColumns+` FROM customers WHERE branch_id = $1 AND national_id = $2`,
		branchID, nationalID,
	)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// GetAllByBranch retrieves all customers for a branch ordered by name
func (r *CustomerRepository) GetAllByBranch(branchID int32) ([]*domain.Customer, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+customerColumns+` FROM customers WHERE branch_id = $1 ORDER BY name, id`,
		branchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// Update updates a customer's details
func (r *CustomerRepository) Update(customer *domain.Customer) (*domain.Customer, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE customers SET name = $1, national_id = $2, phone = $3, updated_at = now()
		WHERE branch_id = $4 AND id = $5
		RETURNING `+customerColumns,
		customer.Name, customer.NationalID, customer.Phone, customer.BranchID, customer.ID,
	)
	updated, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return updated, nil
}
