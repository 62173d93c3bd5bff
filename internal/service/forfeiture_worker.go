package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ForfeitureWorker is a background worker that periodically sweeps active
// loans for forfeiture eligibility.
type ForfeitureWorker struct {
	forfeitureService *ForfeitureService
	logger            zerolog.Logger
	interval          time.Duration
	stopCh            chan struct{}
	doneCh            chan struct{}
	mu                sync.Mutex
	running           bool
}

// ForfeitureWorkerConfig holds configuration for the forfeiture worker
type ForfeitureWorkerConfig struct {
	Interval time.Duration // How often to run the sweep
}

// DefaultForfeitureWorkerConfig returns sensible defaults
func DefaultForfeitureWorkerConfig() ForfeitureWorkerConfig {
	return ForfeitureWorkerConfig{
		Interval: 6 * time.Hour,
	}
}

// NewForfeitureWorker creates a new forfeiture worker
func NewForfeitureWorker(forfeitureService *ForfeitureService, logger zerolog.Logger, config ForfeitureWorkerConfig) *ForfeitureWorker {
	if config.Interval <= 0 {
		config.Interval = 6 * time.Hour
	}

	return &ForfeitureWorker{
		forfeitureService: forfeitureService,
		logger:            logger.With().Str("component", "forfeiture_worker").Logger(),
		interval:          config.Interval,
		stopCh:            make(chan struct{}),
		doneCh:            make(chan struct{}),
	}
}

// Start begins the background sweep
func (w *ForfeitureWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info().
		Dur("interval", w.interval).
		Msg("Starting forfeiture worker")

	go w.run(ctx)
}

// Stop gracefully stops the worker
func (w *ForfeitureWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping forfeiture worker")
	close(w.stopCh)
	<-w.doneCh
	w.logger.Info().Msg("Forfeiture worker stopped")
}

// run is the main loop for the worker
func (w *ForfeitureWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Run immediately on startup
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.setStopped()
			return
		case <-w.stopCh:
			w.setStopped()
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ForfeitureWorker) setStopped() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// sweep runs one forfeiture scan and logs the outcome
func (w *ForfeitureWorker) sweep(ctx context.Context) {
	start := time.Now()

	stats, err := w.forfeitureService.ScanOnce(ctx, start)
	if err != nil {
		w.logger.Error().Err(err).Msg("Forfeiture sweep failed")
		return
	}

	w.logger.Info().
		Int("scanned", stats.Scanned).
		Int("at_risk", stats.AtRisk).
		Int("forfeited", stats.Forfeited).
		Dur("duration", time.Since(start)).
		Msg("Forfeiture sweep complete")
}
