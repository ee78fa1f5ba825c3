package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cassiomorais/movierental/internal/domain/customer"
	domainErrors "github.com/cassiomorais/movierental/internal/domain/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerRepository implements customer.Repository using PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

func (r *CustomerRepository) scanCustomer(s scanner) (*customer.Customer, error) {
	c := &customer.Customer{}
	err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.DateOfBirth, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domainErrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return c, nil
}

// Create inserts a new customer and assigns its generated ID.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	err := r.db(ctx).QueryRow(ctx,
		`INSERT INTO customers (name, email, phone, date_of_birth, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		c.Name, c.Email, c.Phone, c.DateOfBirth, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrDuplicateEmail
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by its ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	return r.scanCustomer(r.db(ctx).QueryRow(ctx,
		`SELECT id, name, email, phone, date_of_birth, created_at, updated_at
		 FROM customers WHERE id = $1`, id))
}
