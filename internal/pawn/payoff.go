package pawn

import (
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/util"
)

// PayoffState is the full picture of what a loan owes on a reference date,
// broken into the obligations the allocator pays in order.
type PayoffState struct {
	Period  Period `json:"period"`
	LoanDay int    `json:"loanDay"`

	// FeeOwed is the outstanding onboarding obligation (flat fee plus one
	// month of interest). Nonzero only during the onboarding period.
	FeeOwed int64 `json:"feeOwed"`
	// InterestOwed is accrued, unsettled cycle interest. Always zero in the
	// onboarding period (bundled into FeeOwed) and in the principal-only
	// period (defining behavior, no carry-over).
	InterestOwed  int64 `json:"interestOwed"`
	PrincipalOwed int64 `json:"principalOwed"`
	TotalOwed     int64 `json:"totalOwed"`
	DailyRate     int64 `json:"dailyRate"`

	// Forfeiture tracking, populated only when a threshold is configured.
	InGracePeriod       bool `json:"inGracePeriod"`
	DaysPastDue         int  `json:"daysPastDue"`
	DaysUntilForfeiture *int `json:"daysUntilForfeiture,omitempty"`
}

// ComputePayoff classifies the loan's period on referenceDate and computes
// the amounts owed per obligation. forfeitureThresholdDays is an external,
// toggleable policy: nil disables forfeiture tracking entirely.
func ComputePayoff(snap Snapshot, referenceDate time.Time, forfeitureThresholdDays *int) PayoffState {
	loanDay := snap.LoanDay(referenceDate)

	state := PayoffState{
		Period:    periodForDay(loanDay),
		LoanDay:   loanDay,
		DailyRate: snap.DailyRate(),
	}

	switch state.Period {
	case PeriodOnboarding:
		if !snap.OnboardingFeePaid {
			if snap.OnboardingFeeRemaining > 0 {
				state.FeeOwed = snap.OnboardingFeeRemaining
			} else {
				state.FeeOwed = snap.onboardingObligation()
			}
		}
		state.PrincipalOwed = snap.PrincipalRemaining

	case PeriodInterest:
		accrued := int64(util.DaysBetween(snap.CurrentCycleStart, referenceDate)) * state.DailyRate
		owed := accrued - snap.InterestPaidCycle
		if owed < 0 {
			owed = 0
		}
		state.InterestOwed = owed
		state.PrincipalOwed = snap.PrincipalRemaining

	case PeriodPrincipalOnly:
		state.PrincipalOwed = snap.PrincipalRemaining
	}

	state.TotalOwed = state.FeeOwed + state.InterestOwed + state.PrincipalOwed

	if forfeitureThresholdDays != nil {
		due := util.DateOnly(snap.NextPaymentDueDate)
		if util.DateOnly(referenceDate).After(due) {
			state.InGracePeriod = true
			state.DaysPastDue = util.DaysBetween(due, referenceDate)
			remaining := *forfeitureThresholdDays - state.DaysPastDue
			state.DaysUntilForfeiture = &remaining
		}
	}

	return state
}
