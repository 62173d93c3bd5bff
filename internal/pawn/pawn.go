// Package pawn implements the payoff and payment-allocation engine for pawn
// loans. Everything in this package is a pure function of a loan snapshot plus
// primitives: no I/O, no clocks, no persistence. Monetary values are integer
// minor currency units (sen) and amounts round down, with one exception: the
// daily rate rounds to the nearest sen (see Snapshot.DailyRate). A computed
// amount re-applied through the allocator always settles exactly.
package pawn

import (
	"errors"
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/util"
	"github.com/shopspring/decimal"
)

// Contract constants. Period boundaries are fixed at loan creation and depend
// only on the start date, never on payment history.
const (
	// OnboardingDays is the length of the onboarding period, and also the
	// length of a standard interest cycle.
	OnboardingDays = 30
	// TermDays is the contractual term. Past it no further interest accrues.
	TermDays = 450
	// DaysPerMonth is the divisor used to derive the daily interest rate
	// from the monthly charge.
	DaysPerMonth = 30
)

// Engine errors. All are caller-contract violations, reported as typed
// failures so the HTTP layer can re-prompt instead of guessing.
var (
	ErrAmountNotPositive = errors.New("payment amount must be positive")
	ErrStrategyRequired  = errors.New("a partial payment strategy is required for a partial interest payment")
	ErrUnknownStrategy   = errors.New("unknown partial payment strategy")
)

// Period is one of the three contractual periods of a loan's life.
// The state machine only moves forward: onboarding, then interest-bearing,
// then principal-only.
type Period string

const (
	PeriodOnboarding    Period = "onboarding"
	PeriodInterest      Period = "interest_bearing"
	PeriodPrincipalOnly Period = "principal_only"
)

// Strategy selects what happens to the interest shortfall when a payment
// covers only part of the interest owed. It is required exactly then; for
// every other payment it is ignored.
type Strategy string

const (
	// StrategyNone marks the strategy as not applicable.
	StrategyNone Strategy = ""
	// StrategyNewCycle restarts the accrual cycle at the payment date.
	StrategyNewCycle Strategy = "new_cycle"
	// StrategyKeepDueDate keeps the original due date and carries the
	// unpaid interest remainder into the next payment.
	StrategyKeepDueDate Strategy = "keep_due_date"
)

// Valid reports whether s is one of the known strategy values.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyNone, StrategyNewCycle, StrategyKeepDueDate:
		return true
	}
	return false
}

// Snapshot is the immutable state of a loan fed into every calculation.
// A successful allocation returns a new snapshot; the caller owns persisting
// it atomically against concurrent payments.
type Snapshot struct {
	Principal           int64           `json:"principal"`
	PrincipalRemaining  int64           `json:"principalRemaining"`
	MonthlyInterestRate decimal.Decimal `json:"monthlyInterestRate"`
	OnboardingFee       int64           `json:"onboardingFee"`
	StartDate           time.Time       `json:"startDate"`
	TermEndDate         time.Time       `json:"termEndDate"`
	NextPaymentDueDate  time.Time       `json:"nextPaymentDueDate"`
	CurrentCycleStart   time.Time       `json:"currentCycleStart"`
	// OnboardingFeeRemaining is the unpaid remainder of the onboarding
	// obligation once a partial payment has been applied to it. Zero while
	// the obligation is still unassessed or once it is settled.
	OnboardingFeeRemaining int64 `json:"onboardingFeeRemaining"`
	OnboardingFeePaid      bool  `json:"onboardingFeePaid"`
	// InterestPaidCycle accumulates interest settled within the current
	// accrual cycle under the keep-due-date strategy, so the next payment
	// owes only the carried remainder plus newly accrued days. Reset to
	// zero whenever a cycle closes.
	InterestPaidCycle int64 `json:"interestPaidCycle"`
}

// NewSnapshot builds the initial snapshot for a freshly written pawn ticket.
// The first due date is the end of the onboarding period.
func NewSnapshot(principal int64, monthlyRate decimal.Decimal, onboardingFee int64, startDate time.Time) Snapshot {
	start := util.DateOnly(startDate)
	return Snapshot{
		Principal:           principal,
		PrincipalRemaining:  principal,
		MonthlyInterestRate: monthlyRate,
		OnboardingFee:       onboardingFee,
		StartDate:           start,
		TermEndDate:         util.AddDays(start, TermDays),
		NextPaymentDueDate:  util.AddDays(start, OnboardingDays),
		CurrentCycleStart:   start,
	}
}

// LoanDay returns the 1-based contract day for a reference date: the start
// date itself is day 1.
func (s Snapshot) LoanDay(referenceDate time.Time) int {
	return util.DaysBetween(s.StartDate, referenceDate) + 1
}

// PeriodOn classifies the contractual period the loan is in on referenceDate.
func (s Snapshot) PeriodOn(referenceDate time.Time) Period {
	return periodForDay(s.LoanDay(referenceDate))
}

func periodForDay(loanDay int) Period {
	switch {
	case loanDay <= OnboardingDays:
		return PeriodOnboarding
	case loanDay <= TermDays:
		return PeriodInterest
	default:
		return PeriodPrincipalOnly
	}
}

// cycleInterest is one full month of interest, always computed from the
// original principal: floor(principal * monthlyRate). Interest never
// recalculates against the shrinking balance.
func (s Snapshot) cycleInterest() int64 {
	return decimal.NewFromInt(s.Principal).Mul(s.MonthlyInterestRate).Floor().IntPart()
}

// DailyRate is the per-day interest charge, derived once from the full
// monthly charge: cycleInterest / DaysPerMonth rounded half away from zero
// to a whole sen. This is the one division in the package that does not
// floor; a 2000 sen monthly charge yields 67 sen/day, not 66.
func (s Snapshot) DailyRate() int64 {
	return decimal.NewFromInt(s.cycleInterest()).
		DivRound(decimal.NewFromInt(DaysPerMonth), 0).
		IntPart()
}

// onboardingObligation is the amount due during onboarding when nothing has
// been paid toward it yet: the flat fee bundled with one full month of
// interest, never prorated by day.
func (s Snapshot) onboardingObligation() int64 {
	return s.OnboardingFee + s.cycleInterest()
}
