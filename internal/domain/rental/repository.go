package rental

import (
	"context"
	"time"
)

// Repository defines the interface for rental persistence
type Repository interface {
	// Create inserts a new rental and assigns its ID
	Create(ctx context.Context, r *Rental) error

	// GetByID retrieves a rental by ID
	GetByID(ctx context.Context, id int64) (*Rental, error)

	// Update updates an existing rental (return date)
	Update(ctx context.Context, r *Rental) error

	// ListByCustomerNamePrefix lists rentals whose customer's name starts
	// with the given prefix (case-insensitive)
	ListByCustomerNamePrefix(ctx context.Context, prefix string) ([]*Rental, error)

	// ListOverdue lists active rentals whose due date is before asOf
	ListOverdue(ctx context.Context, asOf time.Time, limit int) ([]*Rental, error)
}
