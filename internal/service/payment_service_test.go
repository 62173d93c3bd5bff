package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/pawn"
	"github.com/nramli/gadai/gadai-backend/internal/testutil"
)

// interestLoan returns a loan past onboarding: fee settled, current cycle
// started on day 30 with the next payment due on day 60.
// Principal 10000, rate 20%, so cycle interest is 2000 and daily rate 67.
func interestLoan(loanRepo *testutil.MockLoanRepository) *domain.Loan {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := pawn.NewSnapshot(10000, decimal.RequireFromString("0.20"), 500, start)
	snap.OnboardingFeePaid = true
	snap.CurrentCycleStart = start.AddDate(0, 0, 30)
	snap.NextPaymentDueDate = start.AddDate(0, 0, 60)
	return loanRepo.AddLoan(&domain.Loan{
		BranchID:       1,
		CustomerID:     1,
		TicketNo:       "GDA-0001",
		CollateralDesc: "916 gold bangle, 12.4g",
		Snapshot:       snap,
	})
}

func newPaymentServiceFixture() (*PaymentService, *testutil.MockLoanRepository, *testutil.MockPaymentRepository) {
	loanRepo := testutil.NewMockLoanRepository()
	paymentRepo := testutil.NewMockPaymentRepository()
	return NewPaymentService(nil, loanRepo, paymentRepo), loanRepo, paymentRepo
}

func TestPaymentService_ApplyPayment_FullInterest(t *testing.T) {
	service, loanRepo, paymentRepo := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)

	// Day 44: 14 days into the cycle, 14 * 67 = 938 owed
	asOf := loan.Snapshot.CurrentCycleStart.AddDate(0, 0, 14)
	result, err := service.ApplyPayment(context.Background(), 1, loan.ID, ApplyPaymentInput{
		Amount:   938,
		Strategy: pawn.StrategyNone,
		AsOf:     asOf,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(938), result.Allocation.AppliedToInterest)
	assert.Equal(t, int64(0), result.Allocation.AppliedToPrincipal)
	assert.Equal(t, asOf.AddDate(0, 0, 30), result.Loan.Snapshot.NextPaymentDueDate)
	assert.Equal(t, asOf, result.Loan.Snapshot.CurrentCycleStart)

	// Version bumped, record stored
	assert.Equal(t, int32(2), result.Loan.Version)
	require.Len(t, paymentRepo.Payments, 1)
	assert.Equal(t, pawn.PeriodInterest, result.Payment.Period)
	assert.False(t, result.Payment.Redeeming)
}

func TestPaymentService_ApplyPayment_PartialRequiresStrategy(t *testing.T) {
	service, loanRepo, _ := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)

	asOf := loan.Snapshot.CurrentCycleStart.AddDate(0, 0, 14)
	_, err := service.ApplyPayment(context.Background(), 1, loan.ID, ApplyPaymentInput{
		Amount:   500,
		Strategy: pawn.StrategyNone,
		AsOf:     asOf,
	})
	assert.ErrorIs(t, err, pawn.ErrStrategyRequired)
}

func TestPaymentService_ApplyPayment_PartialKeepDueDate(t *testing.T) {
	service, loanRepo, _ := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)
	dueBefore := loan.Snapshot.NextPaymentDueDate

	asOf := loan.Snapshot.CurrentCycleStart.AddDate(0, 0, 14)
	result, err := service.ApplyPayment(context.Background(), 1, loan.ID, ApplyPaymentInput{
		Amount:   500,
		Strategy: pawn.StrategyKeepDueDate,
		AsOf:     asOf,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(500), result.Allocation.AppliedToInterest)
	assert.Equal(t, dueBefore, result.Loan.Snapshot.NextPaymentDueDate)
	assert.Equal(t, int64(500), result.Loan.Snapshot.InterestPaidCycle)
	assert.Equal(t, pawn.StrategyKeepDueDate, result.Payment.Strategy)
}

func TestPaymentService_ApplyPayment_InvalidStrategy(t *testing.T) {
	service, loanRepo, _ := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)

	_, err := service.ApplyPayment(context.Background(), 1, loan.ID, ApplyPaymentInput{
		Amount:   500,
		Strategy: pawn.Strategy("bogus"),
		AsOf:     loan.Snapshot.CurrentCycleStart,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaymentService_ApplyPayment_NonPositiveAmount(t *testing.T) {
	service, loanRepo, _ := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)

	_, err := service.ApplyPayment(context.Background(), 1, loan.ID, ApplyPaymentInput{
		Amount:   0,
		Strategy: pawn.StrategyNone,
		AsOf:     loan.Snapshot.CurrentCycleStart,
	})
	assert.ErrorIs(t, err, pawn.ErrAmountNotPositive)
}

func TestPaymentService_ApplyPayment_LoanNotFound(t *testing.T) {
	service, _, _ := newPaymentServiceFixture()

	_, err := service.ApplyPayment(context.Background(), 1, 99, ApplyPaymentInput{
		Amount:   500,
		Strategy: pawn.StrategyNone,
		AsOf:     time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestPaymentService_ApplyPayment_WrongBranch(t *testing.T) {
	service, loanRepo, _ := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)

	_, err := service.ApplyPayment(context.Background(), 2, loan.ID, ApplyPaymentInput{
		Amount:   500,
		Strategy: pawn.StrategyNone,
		AsOf:     time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestPaymentService_ApplyPayment_NotActive(t *testing.T) {
	service, loanRepo, _ := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)
	loan.Status = domain.LoanStatusForfeited

	_, err := service.ApplyPayment(context.Background(), 1, loan.ID, ApplyPaymentInput{
		Amount:   500,
		Strategy: pawn.StrategyNone,
		AsOf:     time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrLoanNotActive)
}

func TestPaymentService_ApplyPayment_StaleSnapshot(t *testing.T) {
	service, loanRepo, paymentRepo := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)
	loanRepo.UpdateSnapshotErr = domain.ErrStaleSnapshot

	_, err := service.ApplyPayment(context.Background(), 1, loan.ID, ApplyPaymentInput{
		Amount:   938,
		Strategy: pawn.StrategyNone,
		AsOf:     loan.Snapshot.CurrentCycleStart.AddDate(0, 0, 14),
	})
	assert.ErrorIs(t, err, domain.ErrStaleSnapshot)
	assert.Empty(t, paymentRepo.Payments)
}

func TestPaymentService_ApplyPayment_RedemptionEvents(t *testing.T) {
	service, loanRepo, _ := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)
	publisher := &capturingPublisher{}
	service.SetEventPublisher(publisher)

	// Day 44 owes 938 interest + 10000 principal
	asOf := loan.Snapshot.CurrentCycleStart.AddDate(0, 0, 14)
	result, err := service.ApplyPayment(context.Background(), 1, loan.ID, ApplyPaymentInput{
		Amount:   10938,
		Strategy: pawn.StrategyNone,
		AsOf:     asOf,
	})
	require.NoError(t, err)

	assert.True(t, result.Allocation.IsRedeemed)
	assert.Equal(t, domain.LoanStatusRedeemed, result.Loan.Status)
	assert.True(t, result.Payment.Redeeming)
	assert.Equal(t, []string{"payment.applied", "loan.redeemed"}, publisher.eventTypes())
}

func TestPaymentService_Redeem(t *testing.T) {
	service, loanRepo, paymentRepo := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)

	asOf := loan.Snapshot.CurrentCycleStart.AddDate(0, 0, 14)
	result, err := service.Redeem(context.Background(), 1, loan.ID, asOf, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(10938), result.Payment.Amount)
	assert.Equal(t, int64(0), result.Loan.Snapshot.PrincipalRemaining)
	assert.Equal(t, domain.LoanStatusRedeemed, result.Loan.Status)
	assert.NotNil(t, result.Loan.RedeemedAt)
	require.Len(t, paymentRepo.Payments, 1)
}

func TestPaymentService_PreviewPayment(t *testing.T) {
	service, loanRepo, paymentRepo := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)
	versionBefore := loan.Version

	asOf := loan.Snapshot.CurrentCycleStart.AddDate(0, 0, 14)
	preview, err := service.PreviewPayment(1, loan.ID, 500, asOf)
	require.NoError(t, err)

	// 500 / 67 = 7 days covered, due date still moves by the 30-day floor
	assert.Equal(t, 7, preview.OptionNewCycle.DaysCovered)
	assert.Equal(t, asOf.AddDate(0, 0, 30), preview.OptionNewCycle.NextPaymentDueDate)
	assert.Equal(t, loan.Snapshot.NextPaymentDueDate, preview.OptionKeepDueDate.NextPaymentDueDate)
	assert.False(t, preview.CanPayFull)
	assert.Equal(t, int64(10938), preview.FullAmount)

	// Preview must not persist anything
	assert.Equal(t, versionBefore, loan.Version)
	assert.Empty(t, paymentRepo.Payments)
}

func TestPaymentService_PreviewMatchesApply(t *testing.T) {
	service, loanRepo, _ := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)

	asOf := loan.Snapshot.CurrentCycleStart.AddDate(0, 0, 14)
	preview, err := service.PreviewPayment(1, loan.ID, 500, asOf)
	require.NoError(t, err)

	result, err := service.ApplyPayment(context.Background(), 1, loan.ID, ApplyPaymentInput{
		Amount:   500,
		Strategy: pawn.StrategyNewCycle,
		AsOf:     asOf,
	})
	require.NoError(t, err)

	assert.Equal(t, preview.OptionNewCycle, result.Allocation)
}

func TestPaymentService_GetPaymentsByLoanID(t *testing.T) {
	service, loanRepo, _ := newPaymentServiceFixture()
	loan := interestLoan(loanRepo)

	asOf := loan.Snapshot.CurrentCycleStart.AddDate(0, 0, 14)
	_, err := service.ApplyPayment(context.Background(), 1, loan.ID, ApplyPaymentInput{
		Amount:   500,
		Strategy: pawn.StrategyKeepDueDate,
		AsOf:     asOf,
	})
	require.NoError(t, err)

	payments, err := service.GetPaymentsByLoanID(1, loan.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(500), payments[0].Amount)

	// Branch scoping applies to history reads too
	_, err = service.GetPaymentsByLoanID(2, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}
