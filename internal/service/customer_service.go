package service

import (
	"errors"
	"strings"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/websocket"
)

// CustomerService handles customer business logic
type CustomerService struct {
	customerRepo   domain.CustomerRepository
	eventPublisher websocket.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo domain.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// SetEventPublisher sets the publisher for real-time events
func (s *CustomerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateCustomerInput contains input for registering a customer
type CreateCustomerInput struct {
	Name       string
	NationalID string
	Phone      *string
}

// CreateCustomer registers a customer at a branch. Registration is
// idempotent on national ID: an existing record is returned as-is.
func (s *CustomerService) CreateCustomer(branchID int32, input CreateCustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		BranchID:   branchID,
		Name:       strings.TrimSpace(input.Name),
		NationalID: strings.TrimSpace(input.NationalID),
		Phone:      input.Phone,
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.GetByNationalID(branchID, customer.NationalID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		return nil, err
	}

	created, err := s.customerRepo.Create(customer)
	if err != nil {
		return nil, err
	}
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(branchID, websocket.CustomerCreated(created))
	}
	return created, nil
}

// GetCustomers retrieves all customers for a branch
func (s *CustomerService) GetCustomers(branchID int32) ([]*domain.Customer, error) {
	return s.customerRepo.GetAllByBranch(branchID)
}

// GetCustomerByID retrieves a customer by ID within a branch
func (s *CustomerService) GetCustomerByID(branchID int32, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(branchID, id)
}

// UpdateCustomer updates a customer's contact details
func (s *CustomerService) UpdateCustomer(branchID int32, id int32, input CreateCustomerInput) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(branchID, id)
	if err != nil {
		return nil, err
	}

	customer.Name = strings.TrimSpace(input.Name)
	customer.NationalID = strings.TrimSpace(input.NationalID)
	customer.Phone = input.Phone
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	return s.customerRepo.Update(customer)
}
