package movie

import "context"

// Repository defines the interface for movie persistence
type Repository interface {
	// Create inserts a new movie and assigns its ID
	Create(ctx context.Context, m *Movie) error

	// GetByID retrieves a movie by ID
	GetByID(ctx context.Context, id int64) (*Movie, error)

	// Update updates an existing movie (stock, availability, prices)
	Update(ctx context.Context, m *Movie) error

	// List lists all movies ordered by title
	List(ctx context.Context) ([]*Movie, error)
}
