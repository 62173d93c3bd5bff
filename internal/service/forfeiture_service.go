package service

import (
	"context"
	"time"

	"github.com/nramli/gadai/gadai-backend/internal/domain"
	"github.com/nramli/gadai/gadai-backend/internal/pawn"
	"github.com/nramli/gadai/gadai-backend/internal/util"
	"github.com/nramli/gadai/gadai-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// ForfeitureService flags overdue loans whose grace period has run out.
// The engine only computes the countdown; marking a loan forfeited and
// whatever disposition follows (auction intake) happens here and beyond.
type ForfeitureService struct {
	loanRepo       domain.LoanRepository
	eventPublisher websocket.EventPublisher
	thresholdDays  *int
}

// NewForfeitureService creates a new ForfeitureService. thresholdDays is
// the grace period after a missed due date before a loan becomes eligible;
// nil means forfeiture policy is off entirely, so scans are no-ops and no
// loan is ever reported at risk.
func NewForfeitureService(loanRepo domain.LoanRepository, thresholdDays *int) *ForfeitureService {
	return &ForfeitureService{
		loanRepo:      loanRepo,
		thresholdDays: thresholdDays,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ForfeitureService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// LoanAtRisk is an overdue loan together with its forfeiture countdown.
type LoanAtRisk struct {
	Loan                *domain.Loan `json:"loan"`
	DaysPastDue         int          `json:"daysPastDue"`
	DaysUntilForfeiture int          `json:"daysUntilForfeiture"`
}

// ScanStats summarizes one forfeiture sweep.
type ScanStats struct {
	Scanned   int `json:"scanned"`
	AtRisk    int `json:"atRisk"`
	Forfeited int `json:"forfeited"`
}

// ScanOnce classifies every active loan as of now and marks the ones whose
// countdown has reached zero.
func (s *ForfeitureService) ScanOnce(ctx context.Context, now time.Time) (ScanStats, error) {
	if s.thresholdDays == nil {
		return ScanStats{}, nil
	}

	loans, err := s.loanRepo.GetAllActive()
	if err != nil {
		return ScanStats{}, err
	}

	asOf := util.DateOnly(now)
	stats := ScanStats{Scanned: len(loans)}

	for _, loan := range loans {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		state := pawn.ComputePayoff(loan.Snapshot, asOf, s.thresholdDays)
		if state.DaysUntilForfeiture == nil {
			continue
		}
		if *state.DaysUntilForfeiture > 0 {
			stats.AtRisk++
			continue
		}

		if err := s.loanRepo.MarkForfeited(loan.ID, asOf); err != nil {
			log.Error().Err(err).
				Int32("loan_id", loan.ID).
				Str("ticket_no", loan.TicketNo).
				Msg("Failed to mark loan forfeited")
			continue
		}
		stats.Forfeited++

		if s.eventPublisher != nil {
			s.eventPublisher.Publish(loan.BranchID, websocket.LoanForfeited(loan))
		}
		log.Info().
			Int32("loan_id", loan.ID).
			Str("ticket_no", loan.TicketNo).
			Int("days_past_due", state.DaysPastDue).
			Msg("Loan marked forfeited")
	}

	return stats, nil
}

// GetAtRisk lists a branch's active loans currently in their grace period.
func (s *ForfeitureService) GetAtRisk(branchID int32, now time.Time) ([]*LoanAtRisk, error) {
	if s.thresholdDays == nil {
		return nil, nil
	}

	loans, err := s.loanRepo.GetByStatus(branchID, domain.LoanStatusActive)
	if err != nil {
		return nil, err
	}

	asOf := util.DateOnly(now)
	var atRisk []*LoanAtRisk
	for _, loan := range loans {
		state := pawn.ComputePayoff(loan.Snapshot, asOf, s.thresholdDays)
		if state.DaysUntilForfeiture == nil {
			continue
		}
		atRisk = append(atRisk, &LoanAtRisk{
			Loan:                loan,
			DaysPastDue:         state.DaysPastDue,
			DaysUntilForfeiture: *state.DaysUntilForfeiture,
		})
	}
	return atRisk, nil
}
