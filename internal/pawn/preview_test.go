package pawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewOptions_MatchesApplyPayment(t *testing.T) {
	// The previewer must produce exactly what ApplyPayment does for the
	// same inputs and a chosen strategy, on every field.
	snap := interestSnapshot()
	ref := onDay(44)

	preview, err := PreviewOptions(snap, 500, ref)
	assert.NoError(t, err)

	applyA, err := ApplyPayment(snap, 500, StrategyNewCycle, ref)
	assert.NoError(t, err)
	applyB, err := ApplyPayment(snap, 500, StrategyKeepDueDate, ref)
	assert.NoError(t, err)

	assert.Equal(t, applyA, preview.OptionNewCycle)
	assert.Equal(t, applyB, preview.OptionKeepDueDate)
}

func TestPreviewOptions_DoesNotMutateSnapshot(t *testing.T) {
	snap := interestSnapshot()
	before := snap

	_, err := PreviewOptions(snap, 500, onDay(44))
	assert.NoError(t, err)
	assert.Equal(t, before, snap)
}

func TestPreviewOptions_FullAmount(t *testing.T) {
	preview, err := PreviewOptions(interestSnapshot(), 500, onDay(44))
	assert.NoError(t, err)

	assert.False(t, preview.CanPayFull)
	assert.Equal(t, int64(10938), preview.FullAmount)
}

func TestPreviewOptions_CanPayFull(t *testing.T) {
	preview, err := PreviewOptions(interestSnapshot(), 10938, onDay(44))
	assert.NoError(t, err)

	assert.True(t, preview.CanPayFull)
	assert.True(t, preview.OptionNewCycle.IsRedeemed)
	assert.True(t, preview.OptionKeepDueDate.IsRedeemed)
}

func TestPreviewOptions_IdenticalOutsidePartialInterest(t *testing.T) {
	// Onboarding ignores the strategy, so both options must agree.
	preview, err := PreviewOptions(testSnapshot(), 1500, onDay(5))
	assert.NoError(t, err)

	assert.Equal(t, preview.OptionNewCycle, preview.OptionKeepDueDate)
}

func TestPreviewOptions_RejectsNonPositiveAmount(t *testing.T) {
	_, err := PreviewOptions(testSnapshot(), 0, onDay(5))
	assert.ErrorIs(t, err, ErrAmountNotPositive)
}
