package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cassiomorais/movierental/internal/domain/customer"
	domainErrors "github.com/cassiomorais/movierental/internal/domain/errors"
	"github.com/cassiomorais/movierental/internal/domain/movie"
	"github.com/cassiomorais/movierental/internal/domain/rental"
	"github.com/cassiomorais/movierental/internal/payment"
	"github.com/rs/zerolog"
)

// RentalService orchestrates the rental transaction workflow: availability
// check, payment, stock mutation and one atomic commit, plus the inverse
// return flow.
type RentalService struct {
	rentalRepo   rental.Repository
	movieRepo    movie.Repository
	customerRepo customer.Repository
	txManager    TransactionManager
	registry     *payment.Registry
	clock        Clock
	logger       zerolog.Logger
}

// NewRentalService creates a new RentalService.
func NewRentalService(
	rentalRepo rental.Repository,
	movieRepo movie.Repository,
	customerRepo customer.Repository,
	txManager TransactionManager,
	registry *payment.Registry,
	clock Clock,
	logger zerolog.Logger,
) *RentalService {
	return &RentalService{
		rentalRepo:   rentalRepo,
		movieRepo:    movieRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		registry:     registry,
		clock:        clock,
		logger:       logger.With().Str("component", "rental_service").Logger(),
	}
}

// RentMovieRequest holds the input for renting a movie.
type RentMovieRequest struct {
	MovieID       int64
	CustomerID    int64
	DaysRented    int
	PaymentMethod string
}

// Rent charges the customer and hands out one copy of the movie.
//
// Nothing is mutated until payment succeeds, so a declined payment needs no
// rollback. If the commit fails after a successful charge, the charge is not
// reversed; the failure is surfaced and the gap is deliberate. There is no
// cross-request mutual exclusion: two concurrent rents of the last copy can
// both pass the availability check.
func (s *RentalService) Rent(ctx context.Context, req RentMovieRequest) (*rental.Rental, error) {
	// Input validation comes before any lookup.
	if req.DaysRented < rental.MinDaysRented || req.DaysRented > rental.MaxDaysRented {
		return nil, domainErrors.NewValidationError("days_rented", "must be between 1 and 30")
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, domainErrors.ErrEmptyPaymentMethod
	}

	s.logger.Info().
		Int64("movie_id", req.MovieID).
		Int64("customer_id", req.CustomerID).
		Int("days_rented", req.DaysRented).
		Msg("renting movie")

	m, err := s.movieRepo.GetByID(ctx, req.MovieID)
	if err != nil {
		return nil, err
	}
	c, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	if !m.IsAvailable {
		return nil, fmt.Errorf("movie %q: %w", m.Title, domainErrors.ErrMovieUnavailable)
	}
	if m.Stock <= 0 {
		return nil, fmt.Errorf("movie %q: %w", m.Title, domainErrors.ErrOutOfStock)
	}

	gateway, err := s.registry.Select(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	amountCents := m.RentalPriceCents * int64(req.DaysRented)
	ok, err := gateway.ProcessPayment(ctx, amountCents, "Rental for movie: "+m.Title)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, domainErrors.NewDomainError(
			domainErrors.CodeRentalProcessing,
			"an error occurred while processing the rental",
			err,
		)
	}
	if !ok {
		return nil, fmt.Errorf("payment failed using %s: %w", gateway.Name(), domainErrors.ErrPaymentDeclined)
	}

	r, err := rental.New(m.ID, c.ID, req.DaysRented, m.RentalPriceCents, gateway.Name(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := m.TakeCopy(); err != nil {
		return nil, err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.rentalRepo.Create(txCtx, r); err != nil {
			return err
		}
		return s.movieRepo.Update(txCtx, m)
	})
	if err != nil {
		// The charge is not reversed when persistence fails.
		s.logger.Error().Err(err).Int64("movie_id", m.ID).Msg("failed to persist rental after successful payment")
		return nil, domainErrors.NewDomainError(domainErrors.CodePersistenceFailure, "persisting rental", err)
	}

	s.logger.Info().
		Int64("rental_id", r.ID).
		Int64("total_cost_cents", r.TotalCostCents).
		Str("payment_method", r.PaymentMethod).
		Msg("movie rented")
	return r, nil
}

// Return closes a rental and puts the copy back into stock.
func (s *RentalService) Return(ctx context.Context, rentalID int64) (*rental.Rental, error) {
	s.logger.Info().Int64("rental_id", rentalID).Msg("returning movie")

	r, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if err := r.MarkReturned(s.clock.Now()); err != nil {
		return nil, err
	}

	m, err := s.movieRepo.GetByID(ctx, r.MovieID)
	if err != nil {
		return nil, err
	}
	m.ReturnCopy()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.rentalRepo.Update(txCtx, r); err != nil {
			return err
		}
		return s.movieRepo.Update(txCtx, m)
	})
	if err != nil {
		return nil, domainErrors.NewDomainError(domainErrors.CodePersistenceFailure, "persisting return", err)
	}

	s.logger.Info().Int64("rental_id", r.ID).Int64("movie_id", m.ID).Msg("movie returned")
	return r, nil
}

// GetByID retrieves a rental by ID.
func (s *RentalService) GetByID(ctx context.Context, id int64) (*rental.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

// ListByCustomerNamePrefix lists rentals whose customer's name starts with
// the given prefix.
func (s *RentalService) ListByCustomerNamePrefix(ctx context.Context, prefix string) ([]*rental.Rental, error) {
	return s.rentalRepo.ListByCustomerNamePrefix(ctx, prefix)
}
