package postgres

import (
	"context"
	"fmt"

	domainErrors "github.com/cassiomorais/movierental/internal/domain/errors"
	"github.com/cassiomorais/movierental/internal/domain/movie"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MovieRepository implements movie.Repository using PostgreSQL.
type MovieRepository struct {
	pool *pgxpool.Pool
}

// NewMovieRepository creates a new MovieRepository.
func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

func (r *MovieRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanMovie scans a movie from any source implementing the scanner interface.
func (r *MovieRepository) scanMovie(s scanner) (*movie.Movie, error) {
	m := &movie.Movie{}
	var (
		rentalPriceStr string
		salePriceStr   string
	)
	err := s.Scan(&m.ID, &m.Title, &m.Description, &m.Stock, &m.IsAvailable,
		&rentalPriceStr, &salePriceStr, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domainErrors.ErrMovieNotFound
		}
		return nil, fmt.Errorf("scan movie: %w", err)
	}

	m.RentalPriceCents, err = numericStringToCents(rentalPriceStr)
	if err != nil {
		return nil, fmt.Errorf("parse rental price: %w", err)
	}
	m.SalePriceCents, err = numericStringToCents(salePriceStr)
	if err != nil {
		return nil, fmt.Errorf("parse sale price: %w", err)
	}
	return m, nil
}

// Create inserts a new movie and assigns its generated ID.
func (r *MovieRepository) Create(ctx context.Context, m *movie.Movie) error {
	err := r.db(ctx).QueryRow(ctx,
		`INSERT INTO movies (title, description, stock, is_available, rental_price, sale_price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		m.Title, m.Description, m.Stock, m.IsAvailable,
		centsToNumericString(m.RentalPriceCents), centsToNumericString(m.SalePriceCents),
		m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}
	return nil
}

// GetByID retrieves a movie by its ID.
func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*movie.Movie, error) {
	return r.scanMovie(r.db(ctx).QueryRow(ctx,
		`SELECT id, title, description, stock, is_available, rental_price, sale_price, created_at, updated_at
		 FROM movies WHERE id = $1`, id))
}

// Update writes the movie's current stock, availability and prices.
func (r *MovieRepository) Update(ctx context.Context, m *movie.Movie) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE movies SET title = $1, description = $2, stock = $3, is_available = $4,
		  rental_price = $5, sale_price = $6, updated_at = $7
		 WHERE id = $8`,
		m.Title, m.Description, m.Stock, m.IsAvailable,
		centsToNumericString(m.RentalPriceCents), centsToNumericString(m.SalePriceCents),
		m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrMovieNotFound
	}
	return nil
}

// List retrieves all movies ordered by title.
func (r *MovieRepository) List(ctx context.Context) ([]*movie.Movie, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT id, title, description, stock, is_available, rental_price, sale_price, created_at, updated_at
		 FROM movies ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []*movie.Movie
	for rows.Next() {
		m, err := r.scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
