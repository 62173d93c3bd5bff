package pawn

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// testSnapshot is the reference loan used across the package tests:
// RM 100.00 principal, 20% monthly interest, RM 5.00 onboarding fee.
func testSnapshot() Snapshot {
	return NewSnapshot(10000, decimal.NewFromFloat(0.20), 500, testStart)
}

// onDay returns the reference date for a 1-based loan day.
func onDay(d int) time.Time {
	return testStart.AddDate(0, 0, d-1)
}

func TestPeriodForDay_AllBoundaries(t *testing.T) {
	snap := testSnapshot()

	for d := 1; d <= TermDays+10; d++ {
		got := snap.PeriodOn(onDay(d))

		var want Period
		switch {
		case d <= OnboardingDays:
			want = PeriodOnboarding
		case d <= TermDays:
			want = PeriodInterest
		default:
			want = PeriodPrincipalOnly
		}

		if got != want {
			t.Fatalf("Day %d: expected period %s, got %s", d, want, got)
		}
	}
}

func TestPeriodOn_IgnoresTimeOfDay(t *testing.T) {
	snap := testSnapshot()

	// 23:59 on the last onboarding day is still onboarding
	late := onDay(OnboardingDays).Add(23*time.Hour + 59*time.Minute)
	if got := snap.PeriodOn(late); got != PeriodOnboarding {
		t.Errorf("Expected onboarding, got %s", got)
	}
}

func TestComputePayoff_OnboardingDay1(t *testing.T) {
	// 500 fee + floor(10000 * 0.20) = 2000 interest bundled into the
	// onboarding obligation; principal still fully owed.
	state := ComputePayoff(testSnapshot(), onDay(1), nil)

	if state.Period != PeriodOnboarding {
		t.Fatalf("Expected onboarding, got %s", state.Period)
	}
	if state.FeeOwed != 2500 {
		t.Errorf("Expected fee owed 2500, got %d", state.FeeOwed)
	}
	if state.InterestOwed != 0 {
		t.Errorf("Expected interest owed 0, got %d", state.InterestOwed)
	}
	if state.PrincipalOwed != 10000 {
		t.Errorf("Expected principal owed 10000, got %d", state.PrincipalOwed)
	}
	if state.TotalOwed != 12500 {
		t.Errorf("Expected total owed 12500, got %d", state.TotalOwed)
	}
}

func TestComputePayoff_OnboardingPartialFeeRemaining(t *testing.T) {
	snap := testSnapshot()
	snap.OnboardingFeeRemaining = 1000

	state := ComputePayoff(snap, onDay(10), nil)

	if state.FeeOwed != 1000 {
		t.Errorf("Expected fee owed 1000, got %d", state.FeeOwed)
	}
	if state.TotalOwed != 11000 {
		t.Errorf("Expected total owed 11000, got %d", state.TotalOwed)
	}
}

func TestComputePayoff_OnboardingFeeAlreadyPaid(t *testing.T) {
	snap := testSnapshot()
	snap.OnboardingFeePaid = true

	state := ComputePayoff(snap, onDay(20), nil)

	if state.FeeOwed != 0 {
		t.Errorf("Expected fee owed 0 once paid, got %d", state.FeeOwed)
	}
	if state.TotalOwed != snap.PrincipalRemaining {
		t.Errorf("Expected total owed %d, got %d", snap.PrincipalRemaining, state.TotalOwed)
	}
}

func TestComputePayoff_InterestPeriod(t *testing.T) {
	// Cycle start day 30, reference day 44: 14 days at 67/day = 938.
	snap := testSnapshot()
	snap.OnboardingFeePaid = true
	snap.CurrentCycleStart = onDay(30)

	state := ComputePayoff(snap, onDay(44), nil)

	if state.Period != PeriodInterest {
		t.Fatalf("Expected interest_bearing, got %s", state.Period)
	}
	if state.DailyRate != 67 {
		t.Errorf("Expected daily rate 67, got %d", state.DailyRate)
	}
	if state.InterestOwed != 938 {
		t.Errorf("Expected interest owed 938, got %d", state.InterestOwed)
	}
	if state.TotalOwed != 10938 {
		t.Errorf("Expected total owed 10938, got %d", state.TotalOwed)
	}
}

func TestComputePayoff_InterestPeriod_CarriedRemainder(t *testing.T) {
	// 500 of the cycle's interest already settled under keep-due-date:
	// only the remainder plus new accrual is owed.
	snap := testSnapshot()
	snap.OnboardingFeePaid = true
	snap.CurrentCycleStart = onDay(30)
	snap.InterestPaidCycle = 500

	state := ComputePayoff(snap, onDay(44), nil)

	if state.InterestOwed != 438 {
		t.Errorf("Expected interest owed 438, got %d", state.InterestOwed)
	}
}

func TestComputePayoff_InterestPeriod_CycleStartDay(t *testing.T) {
	snap := testSnapshot()
	snap.OnboardingFeePaid = true
	snap.CurrentCycleStart = onDay(31)

	state := ComputePayoff(snap, onDay(31), nil)

	if state.InterestOwed != 0 {
		t.Errorf("Expected no interest on cycle start day, got %d", state.InterestOwed)
	}
}

func TestComputePayoff_PrincipalOnly_InterestIsAlwaysZero(t *testing.T) {
	snap := testSnapshot()
	snap.OnboardingFeePaid = true
	snap.PrincipalRemaining = 7300
	snap.CurrentCycleStart = onDay(420)

	for _, d := range []int{TermDays + 1, TermDays + 100, TermDays + 1000} {
		state := ComputePayoff(snap, onDay(d), nil)

		if state.Period != PeriodPrincipalOnly {
			t.Fatalf("Day %d: expected principal_only, got %s", d, state.Period)
		}
		if state.InterestOwed != 0 {
			t.Errorf("Day %d: expected interest owed 0, got %d", d, state.InterestOwed)
		}
		if state.TotalOwed != 7300 {
			t.Errorf("Day %d: expected total owed 7300, got %d", d, state.TotalOwed)
		}
	}
}

func TestComputePayoff_ZeroDailyRate(t *testing.T) {
	// A tiny principal floors the monthly charge to under one sen per day.
	// Nothing may go negative.
	snap := NewSnapshot(10, decimal.NewFromFloat(0.20), 0, testStart)
	snap.OnboardingFeePaid = true
	snap.CurrentCycleStart = onDay(30)

	state := ComputePayoff(snap, onDay(44), nil)

	if state.DailyRate != 0 {
		t.Fatalf("Expected daily rate 0, got %d", state.DailyRate)
	}
	if state.InterestOwed != 0 || state.TotalOwed != 10 {
		t.Errorf("Expected interest 0 and total 10, got %d and %d", state.InterestOwed, state.TotalOwed)
	}
}

func TestComputePayoff_ForfeitureDisabledByDefault(t *testing.T) {
	snap := testSnapshot()

	state := ComputePayoff(snap, onDay(100), nil)

	if state.InGracePeriod || state.DaysPastDue != 0 || state.DaysUntilForfeiture != nil {
		t.Errorf("Expected forfeiture fields empty without a threshold, got %+v", state)
	}
}

func TestComputePayoff_ForfeitureCountdown(t *testing.T) {
	snap := testSnapshot()
	threshold := 90

	// Due date is day 31 (start + 30); day 41 is 10 days past due.
	state := ComputePayoff(snap, onDay(41), &threshold)

	if !state.InGracePeriod {
		t.Fatal("Expected loan to be in grace period")
	}
	if state.DaysPastDue != 10 {
		t.Errorf("Expected 10 days past due, got %d", state.DaysPastDue)
	}
	if state.DaysUntilForfeiture == nil || *state.DaysUntilForfeiture != 80 {
		t.Errorf("Expected 80 days until forfeiture, got %v", state.DaysUntilForfeiture)
	}
}

func TestComputePayoff_ForfeitureReached(t *testing.T) {
	snap := testSnapshot()
	threshold := 90

	state := ComputePayoff(snap, onDay(31+90), &threshold)

	if state.DaysUntilForfeiture == nil || *state.DaysUntilForfeiture != 0 {
		t.Errorf("Expected 0 days until forfeiture, got %v", state.DaysUntilForfeiture)
	}
}

func TestComputePayoff_NotPastDue(t *testing.T) {
	snap := testSnapshot()
	threshold := 90

	state := ComputePayoff(snap, onDay(15), &threshold)

	if state.InGracePeriod || state.DaysUntilForfeiture != nil {
		t.Errorf("Expected no grace period before the due date, got %+v", state)
	}
}
