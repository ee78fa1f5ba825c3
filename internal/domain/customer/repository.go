package customer

import "context"

// Repository defines the interface for customer persistence
type Repository interface {
	// Create inserts a new customer and assigns its ID.
	// Returns errors.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, c *Customer) error

	// GetByID retrieves a customer by ID
	GetByID(ctx context.Context, id int64) (*Customer, error)
}
