package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/pawn"
	"github.com/nramli/gadai/gadai-backend/internal/testutil"
	"github.com/nramli/gadai/gadai-backend/internal/util"
)

func newLoanServiceFixture() (*LoanService, *testutil.MockLoanRepository, *testutil.MockCustomerRepository) {
	loanRepo := testutil.NewMockLoanRepository()
	customerRepo := testutil.NewMockCustomerRepository()
	customerRepo.AddCustomer(&domain.Customer{
		ID:         1,
		BranchID:   1,
		Name:       "Aminah binti Hassan",
		NationalID: "880101-14-5566",
	})
	return NewLoanService(loanRepo, customerRepo), loanRepo, customerRepo
}

func validCreateLoanInput() CreateLoanInput {
	return CreateLoanInput{
		CustomerID:          1,
		TicketNo:            "GDA-0001",
		CollateralDesc:      "916 gold bangle, 12.4g",
		Principal:           100000,
		MonthlyInterestRate: decimal.RequireFromString("0.02"),
		OnboardingFee:       5000,
		StartDate:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLoanService_CreateLoan_Success(t *testing.T) {
	service, _, _ := newLoanServiceFixture()

	loan, err := service.CreateLoan(1, validCreateLoanInput())
	require.NoError(t, err)
	require.NotNil(t, loan)

	assert.Equal(t, int32(1), loan.BranchID)
	assert.Equal(t, "GDA-0001", loan.TicketNo)
	assert.Equal(t, domain.LoanStatusActive, loan.Status)
	assert.Equal(t, int32(1), loan.Version)

	// Snapshot dates derive from the start date alone
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, start, loan.Snapshot.StartDate)
	assert.Equal(t, util.AddDays(start, pawn.TermDays), loan.Snapshot.TermEndDate)
	assert.Equal(t, util.AddDays(start, pawn.OnboardingDays), loan.Snapshot.NextPaymentDueDate)
	assert.Equal(t, int64(100000), loan.Snapshot.PrincipalRemaining)
}

func TestLoanService_CreateLoan_TrimsTicketNo(t *testing.T) {
	service, _, _ := newLoanServiceFixture()

	input := validCreateLoanInput()
	input.TicketNo = "  GDA-0002  "
	loan, err := service.CreateLoan(1, input)
	require.NoError(t, err)
	assert.Equal(t, "GDA-0002", loan.TicketNo)
}

func TestLoanService_CreateLoan_CustomerMissing(t *testing.T) {
	service, _, _ := newLoanServiceFixture()

	input := validCreateLoanInput()
	input.CustomerID = 99
	_, err := service.CreateLoan(1, input)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestLoanService_CreateLoan_CustomerFromOtherBranch(t *testing.T) {
	service, _, customerRepo := newLoanServiceFixture()

	customerRepo.AddCustomer(&domain.Customer{
		ID:         2,
		BranchID:   7,
		Name:       "Lee Wei Ming",
		NationalID: "900505-10-4321",
	})

	input := validCreateLoanInput()
	input.CustomerID = 2
	_, err := service.CreateLoan(1, input)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestLoanService_CreateLoan_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateLoanInput)
		wantErr error
	}{
		{"zero principal", func(i *CreateLoanInput) { i.Principal = 0 }, domain.ErrLoanPrincipalInvalid},
		{"negative principal", func(i *CreateLoanInput) { i.Principal = -100 }, domain.ErrLoanPrincipalInvalid},
		{"negative fee", func(i *CreateLoanInput) { i.OnboardingFee = -1 }, domain.ErrLoanFeeInvalid},
		{"empty ticket", func(i *CreateLoanInput) { i.TicketNo = "   " }, domain.ErrLoanTicketNoEmpty},
		{"empty collateral", func(i *CreateLoanInput) { i.CollateralDesc = "" }, domain.ErrLoanCollateralEmpty},
		{"rate above one", func(i *CreateLoanInput) {
			i.MonthlyInterestRate = decimal.RequireFromString("1.5")
		}, domain.ErrLoanInterestRateInvalid},
		{"missing customer id", func(i *CreateLoanInput) { i.CustomerID = 0 }, domain.ErrLoanCustomerRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newLoanServiceFixture()
			input := validCreateLoanInput()
			tt.mutate(&input)
			_, err := service.CreateLoan(1, input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoanService_CreateLoan_PublishesEvent(t *testing.T) {
	service, _, _ := newLoanServiceFixture()
	publisher := &capturingPublisher{}
	service.SetEventPublisher(publisher)

	_, err := service.CreateLoan(1, validCreateLoanInput())
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "loan.created", publisher.events[0].event.Type)
	assert.Equal(t, int32(1), publisher.events[0].branchID)
}

func TestLoanService_GetLoans_ScopedToBranch(t *testing.T) {
	service, loanRepo, _ := newLoanServiceFixture()

	snap := pawn.NewSnapshot(100000, decimal.RequireFromString("0.02"), 5000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	loanRepo.AddLoan(&domain.Loan{BranchID: 1, CustomerID: 1, TicketNo: "GDA-0001", CollateralDesc: "gold ring", Snapshot: snap})
	loanRepo.AddLoan(&domain.Loan{BranchID: 2, CustomerID: 1, TicketNo: "GDB-0001", CollateralDesc: "gold chain", Snapshot: snap})

	loans, err := service.GetLoans(1)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "GDA-0001", loans[0].TicketNo)
}

func TestLoanService_GetLoanByTicketNo(t *testing.T) {
	service, loanRepo, _ := newLoanServiceFixture()

	snap := pawn.NewSnapshot(100000, decimal.RequireFromString("0.02"), 5000, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	loanRepo.AddLoan(&domain.Loan{BranchID: 1, CustomerID: 1, TicketNo: "GDA-0042", CollateralDesc: "watch", Snapshot: snap})

	loan, err := service.GetLoanByTicketNo(1, " GDA-0042 ")
	require.NoError(t, err)
	assert.Equal(t, "GDA-0042", loan.TicketNo)

	_, err = service.GetLoanByTicketNo(1, "GDA-9999")
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLoanService_QuotePayoff(t *testing.T) {
	service, loanRepo, _ := newLoanServiceFixture()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := pawn.NewSnapshot(100000, decimal.RequireFromString("0.02"), 5000, start)
	loan := loanRepo.AddLoan(&domain.Loan{BranchID: 1, CustomerID: 1, TicketNo: "GDA-0001", CollateralDesc: "gold ring", Snapshot: snap})

	quote, err := service.QuotePayoff(1, loan.ID, start.AddDate(0, 0, 5), nil)
	require.NoError(t, err)

	assert.Equal(t, pawn.PeriodOnboarding, quote.State.Period)
	// fee 5000 + one cycle interest floor(100000*0.02)=2000, plus principal
	assert.Equal(t, int64(7000), quote.State.FeeOwed)
	assert.Equal(t, int64(107000), quote.State.TotalOwed)
	assert.Nil(t, quote.State.DaysUntilForfeiture)
}

func TestLoanService_QuotePayoff_NotActive(t *testing.T) {
	service, loanRepo, _ := newLoanServiceFixture()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := pawn.NewSnapshot(100000, decimal.RequireFromString("0.02"), 5000, start)
	loan := loanRepo.AddLoan(&domain.Loan{BranchID: 1, CustomerID: 1, TicketNo: "GDA-0001", CollateralDesc: "gold ring", Snapshot: snap, Status: domain.LoanStatusRedeemed})

	_, err := service.QuotePayoff(1, loan.ID, start, nil)
	assert.ErrorIs(t, err, domain.ErrLoanNotActive)
}

func TestLoanService_QuotePayoff_WithForfeitureThreshold(t *testing.T) {
	service, loanRepo, _ := newLoanServiceFixture()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := pawn.NewSnapshot(100000, decimal.RequireFromString("0.02"), 5000, start)
	loan := loanRepo.AddLoan(&domain.Loan{BranchID: 1, CustomerID: 1, TicketNo: "GDA-0001", CollateralDesc: "gold ring", Snapshot: snap})

	threshold := 90
	quote, err := service.QuotePayoff(1, loan.ID, start.AddDate(0, 0, 40), &threshold)
	require.NoError(t, err)

	require.NotNil(t, quote.State.DaysUntilForfeiture)
	assert.Equal(t, 10, quote.State.DaysPastDue)
	assert.Equal(t, 80, *quote.State.DaysUntilForfeiture)
}
