package service

import (
	"context"
	"time"

	"github.com/cassiomorais/movierental/internal/domain/rental"
	"github.com/cassiomorais/movierental/internal/infrastructure/observability"
	"github.com/rs/zerolog"
)

// OverdueSweeper periodically flags active rentals past their due date. It
// only observes: overdue rentals are logged and exported as a gauge, never
// mutated.
type OverdueSweeper struct {
	rentalRepo rental.Repository
	clock      Clock
	metrics    *observability.Metrics
	logger     zerolog.Logger
	interval   time.Duration
	batchSize  int
}

// NewOverdueSweeper creates a new OverdueSweeper.
func NewOverdueSweeper(
	rentalRepo rental.Repository,
	clock Clock,
	metrics *observability.Metrics,
	logger zerolog.Logger,
	interval time.Duration,
	batchSize int,
) *OverdueSweeper {
	return &OverdueSweeper{
		rentalRepo: rentalRepo,
		clock:      clock,
		metrics:    metrics,
		logger:     logger.With().Str("component", "overdue_sweeper").Logger(),
		interval:   interval,
		batchSize:  batchSize,
	}
}

// Run sweeps on a ticker until ctx is cancelled.
func (s *OverdueSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("overdue sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("overdue sweeper stopped")
			return nil
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass.
func (s *OverdueSweeper) Sweep(ctx context.Context) {
	now := s.clock.Now()
	overdue, err := s.rentalRepo.ListOverdue(ctx, now, s.batchSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list overdue rentals")
		return
	}

	s.metrics.OverdueRentals.Set(float64(len(overdue)))
	for _, r := range overdue {
		s.logger.Warn().
			Int64("rental_id", r.ID).
			Int64("customer_id", r.CustomerID).
			Time("due_date", r.DueDate()).
			Msg("rental overdue")
	}
}
