package service

import (
	"testing"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/testutil"
)

func TestCustomerService_CreateCustomer(t *testing.T) {
	repo := testutil.NewMockCustomerRepository()
	service := NewCustomerService(repo)

	customer, err := service.CreateCustomer(1, CreateCustomerInput{
		Name:       "  Aminah binti Hassan ",
		NationalID: " 880101-14-5566 ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if customer.Name != "Aminah binti Hassan" {
		t.Errorf("expected trimmed name, got %q", customer.Name)
	}
	if customer.NationalID != "880101-14-5566" {
		t.Errorf("expected trimmed national ID, got %q", customer.NationalID)
	}
	if customer.BranchID != 1 {
		t.Errorf("expected branch 1, got %d", customer.BranchID)
	}
}

func TestCustomerService_CreateCustomer_IdempotentOnNationalID(t *testing.T) {
	repo := testutil.NewMockCustomerRepository()
	service := NewCustomerService(repo)

	first, err := service.CreateCustomer(1, CreateCustomerInput{
		Name:       "Aminah binti Hassan",
		NationalID: "880101-14-5566",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	second, err := service.CreateCustomer(1, CreateCustomerInput{
		Name:       "A. Hassan",
		NationalID: "880101-14-5566",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected existing customer %d, got %d", first.ID, second.ID)
	}
	if second.Name != "Aminah binti Hassan" {
		t.Errorf("existing record should be returned as-is, got name %q", second.Name)
	}
	if len(repo.Customers) != 1 {
		t.Errorf("expected 1 stored customer, got %d", len(repo.Customers))
	}
}

func TestCustomerService_CreateCustomer_SameNationalIDOtherBranch(t *testing.T) {
	repo := testutil.NewMockCustomerRepository()
	service := NewCustomerService(repo)

	input := CreateCustomerInput{Name: "Aminah binti Hassan", NationalID: "880101-14-5566"}
	if _, err := service.CreateCustomer(1, input); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := service.CreateCustomer(2, input); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.Customers) != 2 {
		t.Errorf("national IDs are scoped per branch, expected 2 records, got %d", len(repo.Customers))
	}
}

func TestCustomerService_CreateCustomer_Validation(t *testing.T) {
	repo := testutil.NewMockCustomerRepository()
	service := NewCustomerService(repo)

	if _, err := service.CreateCustomer(1, CreateCustomerInput{Name: "", NationalID: "x"}); err != domain.ErrCustomerNameEmpty {
		t.Errorf("expected ErrCustomerNameEmpty, got %v", err)
	}
	if _, err := service.CreateCustomer(1, CreateCustomerInput{Name: "Ali", NationalID: "  "}); err != domain.ErrCustomerNationalIDEmpty {
		t.Errorf("expected ErrCustomerNationalIDEmpty, got %v", err)
	}
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	repo := testutil.NewMockCustomerRepository()
	service := NewCustomerService(repo)

	created, err := service.CreateCustomer(1, CreateCustomerInput{
		Name:       "Aminah binti Hassan",
		NationalID: "880101-14-5566",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	phone := "+60123456789"
	updated, err := service.UpdateCustomer(1, created.ID, CreateCustomerInput{
		Name:       "Aminah binti Hassan",
		NationalID: "880101-14-5566",
		Phone:      &phone,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Phone == nil || *updated.Phone != phone {
		t.Errorf("expected phone %q, got %v", phone, updated.Phone)
	}
}

func TestCustomerService_UpdateCustomer_WrongBranch(t *testing.T) {
	repo := testutil.NewMockCustomerRepository()
	service := NewCustomerService(repo)

	created, _ := service.CreateCustomer(1, CreateCustomerInput{
		Name:       "Aminah binti Hassan",
		NationalID: "880101-14-5566",
	})

	_, err := service.UpdateCustomer(2, created.ID, CreateCustomerInput{
		Name:       "Aminah",
		NationalID: "880101-14-5566",
	})
	if err != domain.ErrCustomerNotFound {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}
