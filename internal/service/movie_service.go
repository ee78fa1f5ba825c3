package service

import (
	"context"

	"github.com/cassiomorais/movierental/internal/domain/movie"
	"github.com/rs/zerolog"
)

// MovieService handles catalog reads and writes.
type MovieService struct {
	movieRepo movie.Repository
	logger    zerolog.Logger
}

// NewMovieService creates a new MovieService.
func NewMovieService(movieRepo movie.Repository, logger zerolog.Logger) *MovieService {
	return &MovieService{
		movieRepo: movieRepo,
		logger:    logger.With().Str("component", "movie_service").Logger(),
	}
}

// AddMovieRequest holds the input for adding a movie to the catalog.
type AddMovieRequest struct {
	Title            string
	Description      string
	Stock            int
	RentalPriceCents int64
	SalePriceCents   int64
}

// Add validates and stores a new movie.
func (s *MovieService) Add(ctx context.Context, req AddMovieRequest) (*movie.Movie, error) {
	m, err := movie.New(req.Title, req.Description, req.Stock, req.RentalPriceCents, req.SalePriceCents)
	if err != nil {
		s.logger.Warn().Err(err).Str("title", req.Title).Msg("invalid movie data")
		return nil, err
	}

	if err := s.movieRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("movie_id", m.ID).Str("title", m.Title).Msg("movie added")
	return m, nil
}

// GetByID retrieves a movie by ID.
func (s *MovieService) GetByID(ctx context.Context, id int64) (*movie.Movie, error) {
	return s.movieRepo.GetByID(ctx, id)
}

// List lists all movies ordered by title.
func (s *MovieService) List(ctx context.Context) ([]*movie.Movie, error) {
	return s.movieRepo.List(ctx)
}
