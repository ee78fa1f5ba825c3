package postgres

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/cassiomorais/movierental/internal/domain/errors"
	"github.com/cassiomorais/movierental/internal/domain/rental"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RentalRepository implements rental.Repository using PostgreSQL.
type RentalRepository struct {
	pool *pgxpool.Pool
}

// NewRentalRepository creates a new RentalRepository.
func NewRentalRepository(pool *pgxpool.Pool) *RentalRepository {
	return &RentalRepository{pool: pool}
}

func (r *RentalRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

func (r *RentalRepository) scanRental(s scanner) (*rental.Rental, error) {
	rec := &rental.Rental{}
	var totalCostStr string
	err := s.Scan(&rec.ID, &rec.MovieID, &rec.CustomerID, &rec.RentalDate,
		&rec.ReturnDate, &rec.DaysRented, &totalCostStr, &rec.PaymentMethod)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domainErrors.ErrRentalNotFound
		}
		return nil, fmt.Errorf("scan rental: %w", err)
	}

	rec.TotalCostCents, err = numericStringToCents(totalCostStr)
	if err != nil {
		return nil, fmt.Errorf("parse total cost: %w", err)
	}
	return rec, nil
}

// Create inserts a new rental and assigns its generated ID.
func (r *RentalRepository) Create(ctx context.Context, rec *rental.Rental) error {
	err := r.db(ctx).QueryRow(ctx,
		`INSERT INTO rentals (movie_id, customer_id, rental_date, return_date, days_rented, total_cost, payment_method)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		rec.MovieID, rec.CustomerID, rec.RentalDate, rec.ReturnDate,
		rec.DaysRented, centsToNumericString(rec.TotalCostCents), rec.PaymentMethod,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}
	return nil
}

// GetByID retrieves a rental by its ID.
func (r *RentalRepository) GetByID(ctx context.Context, id int64) (*rental.Rental, error) {
	return r.scanRental(r.db(ctx).QueryRow(ctx,
		`SELECT id, movie_id, customer_id, rental_date, return_date, days_rented, total_cost, payment_method
		 FROM rentals WHERE id = $1`, id))
}

// Update writes the rental's return date.
func (r *RentalRepository) Update(ctx context.Context, rec *rental.Rental) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE rentals SET return_date = $1 WHERE id = $2`,
		rec.ReturnDate, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update rental: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrRentalNotFound
	}
	return nil
}

// ListByCustomerNamePrefix retrieves rentals whose customer's name starts
// with the given prefix, most recent first.
func (r *RentalRepository) ListByCustomerNamePrefix(ctx context.Context, prefix string) ([]*rental.Rental, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT r.id, r.movie_id, r.customer_id, r.rental_date, r.return_date, r.days_rented, r.total_cost, r.payment_method
		 FROM rentals r
		 JOIN customers c ON c.id = r.customer_id
		 WHERE c.name ILIKE $1 || '%'
		 ORDER BY r.rental_date DESC`, prefix)
	if err != nil {
		return nil, fmt.Errorf("query rentals by customer name: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListOverdue retrieves active rentals whose due date is before asOf,
// oldest first.
func (r *RentalRepository) ListOverdue(ctx context.Context, asOf time.Time, limit int) ([]*rental.Rental, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db(ctx).Query(ctx,
		`SELECT id, movie_id, customer_id, rental_date, return_date, days_rented, total_cost, payment_method
		 FROM rentals
		 WHERE return_date IS NULL
		   AND rental_date + make_interval(days => days_rented) < $1
		 ORDER BY rental_date
		 LIMIT $2`, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("query overdue rentals: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *RentalRepository) collect(rows pgx.Rows) ([]*rental.Rental, error) {
	var rentals []*rental.Rental
	for rows.Next() {
		rec, err := r.scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rec)
	}
	return rentals, rows.Err()
}
