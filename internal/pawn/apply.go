package pawn

import (
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/util"
)

// AppliedPayment is the result of allocating a payment across a loan's
// obligations. The sum of the applied amounts never exceeds the payment;
// anything unapplied is reported as Overpayment, never dropped.
type AppliedPayment struct {
	Period   Period   `json:"period"`
	Strategy Strategy `json:"strategy,omitempty"`

	AppliedToFee       int64 `json:"appliedToFee"`
	AppliedToInterest  int64 `json:"appliedToInterest"`
	AppliedToPrincipal int64 `json:"appliedToPrincipal"`
	// Overpayment is the clamped remainder that could not be applied to any
	// obligation. The caller decides whether to reject or refund it.
	Overpayment int64 `json:"overpayment"`
	// ObligationRemaining is the unpaid remainder of the obligation
	// currently due (onboarding fee or cycle interest) after this payment.
	ObligationRemaining int64 `json:"obligationRemaining"`
	// DaysCovered is the length of the restarted cycle under the new-cycle
	// strategy: floor(interest applied / daily rate).
	DaysCovered int `json:"daysCovered,omitempty"`

	IsFullPayment bool `json:"isFullPayment"`
	IsRedeemed    bool `json:"isRedeemed"`

	NextPaymentDueDate time.Time `json:"nextPaymentDueDate"`
	Snapshot           Snapshot  `json:"snapshot"`
}

// ApplyPayment allocates amount across the loan's obligations for the period
// it is in on referenceDate and returns the payment breakdown together with
// the successor snapshot. It never mutates snap.
//
// strategy is consulted only when the loan is in the interest-bearing period
// and amount does not cover the interest owed; supplying StrategyNone there
// is a validation failure, never a silent default. Everywhere else the
// strategy is ignored.
func ApplyPayment(snap Snapshot, amount int64, strategy Strategy, referenceDate time.Time) (AppliedPayment, error) {
	if amount <= 0 {
		return AppliedPayment{}, ErrAmountNotPositive
	}

	ref := util.DateOnly(referenceDate)
	state := ComputePayoff(snap, ref, nil)
	next := snap

	result := AppliedPayment{
		Period:   state.Period,
		Strategy: StrategyNone,
	}

	switch state.Period {
	case PeriodOnboarding:
		// Fee obligation first, remainder to principal.
		result.AppliedToFee = minInt64(amount, state.FeeOwed)
		remainder := amount - result.AppliedToFee
		result.AppliedToPrincipal = minInt64(remainder, next.PrincipalRemaining)
		result.Overpayment = remainder - result.AppliedToPrincipal
		result.ObligationRemaining = state.FeeOwed - result.AppliedToFee

		next.OnboardingFeeRemaining = result.ObligationRemaining
		if state.FeeOwed > 0 && result.ObligationRemaining == 0 {
			next.OnboardingFeePaid = true
			// The first full interest cycle runs from the end of the
			// onboarding period to twice its length.
			next.CurrentCycleStart = util.AddDays(next.StartDate, OnboardingDays)
			next.NextPaymentDueDate = util.AddDays(next.StartDate, 2*OnboardingDays)
		}

	case PeriodInterest:
		if amount >= state.InterestOwed {
			// Full-or-over interest payment closes the cycle; strategy is
			// ignored and any excess goes to principal.
			result.AppliedToInterest = state.InterestOwed
			remainder := amount - state.InterestOwed
			result.AppliedToPrincipal = minInt64(remainder, next.PrincipalRemaining)
			result.Overpayment = remainder - result.AppliedToPrincipal

			next.CurrentCycleStart = ref
			next.NextPaymentDueDate = util.AddDays(ref, OnboardingDays)
			next.InterestPaidCycle = 0
		} else {
			if strategy == StrategyNone {
				return AppliedPayment{}, ErrStrategyRequired
			}
			if !strategy.Valid() {
				return AppliedPayment{}, ErrUnknownStrategy
			}
			result.Strategy = strategy
			result.AppliedToInterest = amount
			result.ObligationRemaining = state.InterestOwed - amount

			switch strategy {
			case StrategyNewCycle:
				if state.DailyRate > 0 {
					result.DaysCovered = int(amount / state.DailyRate)
				}
				extension := result.DaysCovered
				if extension < OnboardingDays {
					extension = OnboardingDays
				}
				next.CurrentCycleStart = ref
				next.NextPaymentDueDate = util.AddDays(ref, extension)
				next.InterestPaidCycle = 0
			case StrategyKeepDueDate:
				// Cycle and due date untouched; the settled amount is
				// remembered so only the remainder plus new accrual is
				// owed next time.
				next.InterestPaidCycle += amount
			}
		}

	case PeriodPrincipalOnly:
		// No interest, no contractual cadence. The due date is recorded as
		// the payment date purely for the history record.
		result.AppliedToPrincipal = minInt64(amount, next.PrincipalRemaining)
		result.Overpayment = amount - result.AppliedToPrincipal
		next.NextPaymentDueDate = ref
	}

	next.PrincipalRemaining -= result.AppliedToPrincipal

	result.IsFullPayment = amount >= state.TotalOwed
	result.IsRedeemed = next.PrincipalRemaining == 0
	result.NextPaymentDueDate = next.NextPaymentDueDate
	result.Snapshot = next

	return result, nil
}

// FullPayoff computes everything owed on referenceDate and routes exactly
// that amount through ApplyPayment, redeeming the loan in a single call.
func FullPayoff(snap Snapshot, referenceDate time.Time) (AppliedPayment, error) {
	state := ComputePayoff(snap, referenceDate, nil)
	return ApplyPayment(snap, state.TotalOwed, StrategyNone, referenceDate)
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
