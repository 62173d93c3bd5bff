package testutil

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/pawn"
)

// MockLoanRepository is a mock implementation of domain.LoanRepository
type MockLoanRepository struct {
	Loans  map[int32]*domain.Loan
	NextID int32
	// UpdateSnapshotErr forces UpdateSnapshotTx to fail, for exercising
	// concurrent-payment paths.
	UpdateSnapshotErr error
}

// NewMockLoanRepository creates a new MockLoanRepository
func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{
		Loans:  make(map[int32]*domain.Loan),
		NextID: 1,
	}
}

// Create stores a new loan
func (m *MockLoanRepository) Create(loan *domain.Loan) (*domain.Loan, error) {
	loan.ID = m.NextID
	m.NextID++
	loan.Version = 1
	loan.Status = domain.LoanStatusActive
	loan.CreatedAt = time.Now()
	loan.UpdatedAt = loan.CreatedAt
	m.Loans[loan.ID] = loan
	return loan, nil
}

// GetByID retrieves a loan by ID within a branch
func (m *MockLoanRepository) GetByID(branchID int32, id int32) (*domain.Loan, error) {
	loan, ok := m.Loans[id]
	if !ok || loan.BranchID != branchID {
		return nil, domain.ErrLoanNotFound
	}
	return loan, nil
}

// GetByTicketNo retrieves a loan by ticket number within a branch
func (m *MockLoanRepository) GetByTicketNo(branchID int32, ticketNo string) (*domain.Loan, error) {
	for _, loan := range m.Loans {
		if loan.BranchID == branchID && loan.TicketNo == ticketNo {
			return loan, nil
		}
	}
	return nil, domain.ErrLoanNotFound
}

// GetAllByBranch retrieves all loans for a branch ordered by ID
func (m *MockLoanRepository) GetAllByBranch(branchID int32) ([]*domain.Loan, error) {
	var loans []*domain.Loan
	for _, loan := range m.Loans {
		if loan.BranchID == branchID {
			loans = append(loans, loan)
		}
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID < loans[j].ID })
	return loans, nil
}

// GetByStatus retrieves a branch's loans filtered by status
func (m *MockLoanRepository) GetByStatus(branchID int32, status domain.LoanStatus) ([]*domain.Loan, error) {
	var loans []*domain.Loan
	for _, loan := range m.Loans {
		if loan.BranchID == branchID && loan.Status == status {
			loans = append(loans, loan)
		}
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID < loans[j].ID })
	return loans, nil
}

// GetAllActive retrieves active loans across all branches
func (m *MockLoanRepository) GetAllActive() ([]*domain.Loan, error) {
	var loans []*domain.Loan
	for _, loan := range m.Loans {
		if loan.Status == domain.LoanStatusActive {
			loans = append(loans, loan)
		}
	}
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID < loans[j].ID })
	return loans, nil
}

// UpdateSnapshotTx persists a successor snapshot with a version check
func (m *MockLoanRepository) UpdateSnapshotTx(tx interface{}, id int32, expectedVersion int32, snapshot pawn.Snapshot, status domain.LoanStatus) (*domain.Loan, error) {
	if m.UpdateSnapshotErr != nil {
		return nil, m.UpdateSnapshotErr
	}
	loan, ok := m.Loans[id]
	if !ok {
		return nil, domain.ErrLoanNotFound
	}
	if loan.Version != expectedVersion {
		return nil, domain.ErrStaleSnapshot
	}
	loan.Snapshot = snapshot
	loan.Status = status
	loan.Version++
	loan.UpdatedAt = time.Now()
	if status == domain.LoanStatusRedeemed && loan.RedeemedAt == nil {
		now := time.Now()
		loan.RedeemedAt = &now
	}
	return loan, nil
}

// MarkForfeited marks a loan as forfeited
func (m *MockLoanRepository) MarkForfeited(id int32, at time.Time) error {
	loan, ok := m.Loans[id]
	if !ok {
		return domain.ErrLoanNotFound
	}
	loan.Status = domain.LoanStatusForfeited
	loan.ForfeitedAt = &at
	loan.UpdatedAt = time.Now()
	return nil
}

// AddLoan adds a loan to the mock repository (helper for tests)
func (m *MockLoanRepository) AddLoan(loan *domain.Loan) *domain.Loan {
	if loan.ID == 0 {
		loan.ID = m.NextID
		m.NextID++
	} else if loan.ID >= m.NextID {
		m.NextID = loan.ID + 1
	}
	if loan.Version == 0 {
		loan.Version = 1
	}
	if loan.Status == "" {
		loan.Status = domain.LoanStatusActive
	}
	m.Loans[loan.ID] = loan
	return loan
}

// MockPaymentRepository is a mock implementation of domain.PaymentRepository
type MockPaymentRepository struct {
	Payments  map[int32]*domain.Payment
	NextID    int32
	CreateErr error
}

// NewMockPaymentRepository creates a new MockPaymentRepository
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		Payments: make(map[int32]*domain.Payment),
		NextID:   1,
	}
}

// CreateTx stores a new payment record
func (m *MockPaymentRepository) CreateTx(tx interface{}, payment *domain.Payment) (*domain.Payment, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	payment.ID = m.NextID
	m.NextID++
	payment.CreatedAt = time.Now()
	m.Payments[payment.ID] = payment
	return payment, nil
}

// GetByID retrieves a payment by ID
func (m *MockPaymentRepository) GetByID(id int32) (*domain.Payment, error) {
	if payment, ok := m.Payments[id]; ok {
		return payment, nil
	}
	return nil, domain.ErrPaymentNotFound
}

// GetByLoanID retrieves a loan's payments ordered by ID
func (m *MockPaymentRepository) GetByLoanID(loanID int32) ([]*domain.Payment, error) {
	var payments []*domain.Payment
	for _, payment := range m.Payments {
		if payment.LoanID == loanID {
			payments = append(payments, payment)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

// MockCustomerRepository is a mock implementation of domain.CustomerRepository
type MockCustomerRepository struct {
	Customers map[int32]*domain.Customer
	NextID    int32
}

// NewMockCustomerRepository creates a new MockCustomerRepository
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		Customers: make(map[int32]*domain.Customer),
		NextID:    1,
	}
}

// Create stores a new customer
func (m *MockCustomerRepository) Create(customer *domain.Customer) (*domain.Customer, error) {
	customer.ID = m.NextID
	m.NextID++
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	m.Customers[customer.ID] = customer
	return customer, nil
}

// GetByID retrieves a customer by ID within a branch
func (m *MockCustomerRepository) GetByID(branchID int32, id int32) (*domain.Customer, error) {
	customer, ok := m.Customers[id]
	if !ok || customer.BranchID != branchID {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// GetByNationalID retrieves a customer by national ID within a branch
func (m *MockCustomerRepository) GetByNationalID(branchID int32, nationalID string) (*domain.Customer, error) {
	for _, customer := range m.Customers {
		if customer.BranchID == branchID && customer.NationalID == nationalID {
			return customer, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

// GetAllByBranch retrieves all customers for a branch ordered by ID
func (m *MockCustomerRepository) GetAllByBranch(branchID int32) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	for _, customer := range m.Customers {
		if customer.BranchID == branchID {
			customers = append(customers, customer)
		}
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

// Update updates an existing customer
func (m *MockCustomerRepository) Update(customer *domain.Customer) (*domain.Customer, error) {
	if _, ok := m.Customers[customer.ID]; !ok {
		return nil, domain.ErrCustomerNotFound
	}
	customer.UpdatedAt = time.Now()
	m.Customers[customer.ID] = customer
	return customer, nil
}

// AddCustomer adds a customer to the mock repository (helper for tests)
func (m *MockCustomerRepository) AddCustomer(customer *domain.Customer) *domain.Customer {
	if customer.ID == 0 {
		customer.ID = m.NextID
		m.NextID++
	} else if customer.ID >= m.NextID {
		m.NextID = customer.ID + 1
	}
	m.Customers[customer.ID] = customer
	return customer
}

// MockBranchRepository is a mock implementation of domain.BranchRepository
type MockBranchRepository struct {
	Branches      map[int32]*domain.Branch
	ByUserAuth0ID map[string]*domain.Branch
	NextID        int32
}

// NewMockBranchRepository creates a new MockBranchRepository
func NewMockBranchRepository() *MockBranchRepository {
	return &MockBranchRepository{
		Branches:      make(map[int32]*domain.Branch),
		ByUserAuth0ID: make(map[string]*domain.Branch),
		NextID:        1,
	}
}

// GetByID retrieves a branch by ID
func (m *MockBranchRepository) GetByID(id int32) (*domain.Branch, error) {
	if branch, ok := m.Branches[id]; ok {
		return branch, nil
	}
	return nil, domain.ErrBranchNotFound
}

// GetByUserAuth0ID retrieves the branch a user belongs to
func (m *MockBranchRepository) GetByUserAuth0ID(auth0ID string) (*domain.Branch, error) {
	if branch, ok := m.ByUserAuth0ID[auth0ID]; ok {
		return branch, nil
	}
	return nil, domain.ErrBranchNotFound
}

// GetAll retrieves all branches ordered by ID
func (m *MockBranchRepository) GetAll() ([]*domain.Branch, error) {
	var branches []*domain.Branch
	for _, branch := range m.Branches {
		branches = append(branches, branch)
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].ID < branches[j].ID })
	return branches, nil
}

// Create stores a new branch
func (m *MockBranchRepository) Create(branch *domain.Branch) (*domain.Branch, error) {
	branch.ID = m.NextID
	m.NextID++
	branch.CreatedAt = time.Now()
	branch.UpdatedAt = branch.CreatedAt
	m.Branches[branch.ID] = branch
	return branch, nil
}

// Update updates an existing branch
func (m *MockBranchRepository) Update(branch *domain.Branch) (*domain.Branch, error) {
	if _, ok := m.Branches[branch.ID]; !ok {
		return nil, domain.ErrBranchNotFound
	}
	branch.UpdatedAt = time.Now()
	m.Branches[branch.ID] = branch
	return branch, nil
}

// AddBranch adds a branch to the mock repository (helper for tests)
func (m *MockBranchRepository) AddBranch(branch *domain.Branch) *domain.Branch {
	if branch.ID == 0 {
		branch.ID = m.NextID
		m.NextID++
	} else if branch.ID >= m.NextID {
		m.NextID = branch.ID + 1
	}
	m.Branches[branch.ID] = branch
	return branch
}

// LinkUser associates an Auth0 subject with a branch (helper for tests)
func (m *MockBranchRepository) LinkUser(auth0ID string, branch *domain.Branch) {
	m.ByUserAuth0ID[auth0ID] = branch
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users map[string]*domain.User
	ByID  map[uuid.UUID]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// Create stores a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// Update updates an existing user
func (m *MockUserRepository) Update(user *domain.User) (*domain.User, error) {
	if _, ok := m.ByID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockAPITokenRepository is a mock implementation of domain.APITokenRepository
type MockAPITokenRepository struct {
	Tokens map[uuid.UUID]*domain.APIToken
}

// NewMockAPITokenRepository creates a new MockAPITokenRepository
func NewMockAPITokenRepository() *MockAPITokenRepository {
	return &MockAPITokenRepository{
		Tokens: make(map[uuid.UUID]*domain.APIToken),
	}
}

// Create stores a new API token
func (m *MockAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = time.Now()
	m.Tokens[token.ID] = token
	return nil
}

// GetByBranch retrieves a branch's active tokens
func (m *MockAPITokenRepository) GetByBranch(ctx context.Context, branchID int32) ([]*domain.APIToken, error) {
	var tokens []*domain.APIToken
	for _, token := range m.Tokens {
		if token.BranchID == branchID && token.RevokedAt == nil {
			tokens = append(tokens, token)
		}
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].CreatedAt.Before(tokens[j].CreatedAt) })
	return tokens, nil
}

// GetByID retrieves a token by ID within a branch
func (m *MockAPITokenRepository) GetByID(ctx context.Context, branchID int32, id uuid.UUID) (*domain.APIToken, error) {
	token, ok := m.Tokens[id]
	if !ok || token.BranchID != branchID {
		return nil, domain.ErrAPITokenNotFound
	}
	return token, nil
}

// GetByHash retrieves an unrevoked token by its hash
func (m *MockAPITokenRepository) GetByHash(ctx context.Context, hash string) (*domain.APIToken, error) {
	for _, token := range m.Tokens {
		if token.TokenHash == hash && token.RevokedAt == nil {
			return token, nil
		}
	}
	return nil, domain.ErrAPITokenNotFound
}

// Revoke marks a token as revoked
func (m *MockAPITokenRepository) Revoke(ctx context.Context, branchID int32, id uuid.UUID) error {
	token, ok := m.Tokens[id]
	if !ok || token.BranchID != branchID {
		return domain.ErrAPITokenNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

// UpdateLastUsed records a token's last use time
func (m *MockAPITokenRepository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	token, ok := m.Tokens[id]
	if !ok {
		return domain.ErrAPITokenNotFound
	}
	now := time.Now()
	token.LastUsedAt = &now
	return nil
}

// AddToken adds a token to the mock repository (helper for tests)
func (m *MockAPITokenRepository) AddToken(token *domain.APIToken) *domain.APIToken {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	m.Tokens[token.ID] = token
	return token
}

// MockCollateralPhotoRepository is a mock implementation of domain.CollateralPhotoRepository
type MockCollateralPhotoRepository struct {
	Photos map[uuid.UUID]*domain.CollateralPhoto
}

// NewMockCollateralPhotoRepository creates a new MockCollateralPhotoRepository
func NewMockCollateralPhotoRepository() *MockCollateralPhotoRepository {
	return &MockCollateralPhotoRepository{
		Photos: make(map[uuid.UUID]*domain.CollateralPhoto),
	}
}

// Create stores a new photo record
func (m *MockCollateralPhotoRepository) Create(ctx context.Context, photo *domain.CollateralPhoto) error {
	photo.CreatedAt = time.Now()
	m.Photos[photo.ID] = photo
	return nil
}

// GetByID retrieves a photo by ID
func (m *MockCollateralPhotoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CollateralPhoto, error) {
	if photo, ok := m.Photos[id]; ok {
		return photo, nil
	}
	return nil, domain.ErrPhotoNotFound
}

// GetByLoanID retrieves a loan's photos ordered by creation time
func (m *MockCollateralPhotoRepository) GetByLoanID(ctx context.Context, loanID int32) ([]*domain.CollateralPhoto, error) {
	var photos []*domain.CollateralPhoto
	for _, photo := range m.Photos {
		if photo.LoanID == loanID {
			photos = append(photos, photo)
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].CreatedAt.Before(photos[j].CreatedAt) })
	return photos, nil
}

// Delete removes a photo record
func (m *MockCollateralPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.Photos[id]; !ok {
		return domain.ErrPhotoNotFound
	}
	delete(m.Photos, id)
	return nil
}

// MockPhotoStorage is an in-memory implementation of storage.PhotoRepository
type MockPhotoStorage struct {
	Objects map[string][]byte
}

// NewMockPhotoStorage creates a new MockPhotoStorage
func NewMockPhotoStorage() *MockPhotoStorage {
	return &MockPhotoStorage{Objects: make(map[string][]byte)}
}

// Upload stores an object in memory
func (m *MockPhotoStorage) Upload(ctx context.Context, objectPath string, data io.Reader, size int64, contentType string) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.Objects[objectPath] = b
	return nil
}

// Delete removes an object
func (m *MockPhotoStorage) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	return nil
}

// PresignURL returns a deterministic fake URL
func (m *MockPhotoStorage) PresignURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "https://photos.test/" + objectPath, nil
}
