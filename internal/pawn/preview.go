package pawn

import "time"

// PaymentPreview presents both partial-payment strategy outcomes for a
// candidate amount so a caller can offer the choice before committing.
// Each option is exactly what ApplyPayment would return for that strategy.
type PaymentPreview struct {
	OptionNewCycle    AppliedPayment `json:"optionNewCycle"`
	OptionKeepDueDate AppliedPayment `json:"optionKeepDueDate"`
	// CanPayFull reports whether the candidate amount settles everything
	// owed on the reference date; FullAmount is that total.
	CanPayFull bool  `json:"canPayFull"`
	FullAmount int64 `json:"fullAmount"`
}

// PreviewOptions runs the allocator hypothetically, once per strategy,
// without mutating anything. Outside the partial-interest case the two
// options are identical because the strategy is ignored.
func PreviewOptions(snap Snapshot, candidateAmount int64, referenceDate time.Time) (PaymentPreview, error) {
	state := ComputePayoff(snap, referenceDate, nil)

	optionA, err := ApplyPayment(snap, candidateAmount, StrategyNewCycle, referenceDate)
	if err != nil {
		return PaymentPreview{}, err
	}
	optionB, err := ApplyPayment(snap, candidateAmount, StrategyKeepDueDate, referenceDate)
	if err != nil {
		return PaymentPreview{}, err
	}

	return PaymentPreview{
		OptionNewCycle:    optionA,
		OptionKeepDueDate: optionB,
		CanPayFull:        candidateAmount >= state.TotalOwed,
		FullAmount:        state.TotalOwed,
	}, nil
}
