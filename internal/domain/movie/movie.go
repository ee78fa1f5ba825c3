package movie

import (
	"time"

	"github.com/cassiomorais/movierental/internal/domain/errors"
)

const maxTitleLength = 200

// Movie represents a rentable title in the catalog.
//
// Stock counts the physical copies currently available to rent. IsAvailable
// mirrors Stock > 0 and is kept consistent by TakeCopy and ReturnCopy; it is
// stored rather than derived because the original schema persists it.
type Movie struct {
	ID               int64
	Title            string
	Description      string
	Stock            int
	IsAvailable      bool
	RentalPriceCents int64 // per day
	SalePriceCents   int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// New creates a movie after validating its fields.
func New(title, description string, stock int, rentalPriceCents, salePriceCents int64) (*Movie, error) {
	if title == "" {
		return nil, errors.NewValidationError("title", "cannot be empty")
	}
	if len(title) > maxTitleLength {
		return nil, errors.NewValidationError("title", "cannot exceed 200 characters")
	}
	if stock < 0 {
		return nil, errors.NewValidationError("stock", "cannot be negative")
	}
	if rentalPriceCents < 0 {
		return nil, errors.NewValidationError("rental_price", "cannot be negative")
	}
	if salePriceCents < 0 {
		return nil, errors.NewValidationError("sale_price", "cannot be negative")
	}

	now := time.Now()
	return &Movie{
		Title:            title,
		Description:      description,
		Stock:            stock,
		IsAvailable:      stock > 0,
		RentalPriceCents: rentalPriceCents,
		SalePriceCents:   salePriceCents,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// TakeCopy removes one copy from stock for a new rental. Taking the last
// copy flips IsAvailable off. A row whose flag is on but whose stock is
// already exhausted fails with ErrOutOfStock rather than going negative.
func (m *Movie) TakeCopy() error {
	if !m.IsAvailable {
		return errors.ErrMovieUnavailable
	}
	if m.Stock <= 0 {
		return errors.ErrOutOfStock
	}
	m.Stock--
	if m.Stock == 0 {
		m.IsAvailable = false
	}
	m.UpdatedAt = time.Now()
	return nil
}

// ReturnCopy puts one copy back into stock. Availability is restored as soon
// as any copy comes back, regardless of how many are still out.
func (m *Movie) ReturnCopy() {
	m.Stock++
	if !m.IsAvailable {
		m.IsAvailable = true
	}
	m.UpdatedAt = time.Now()
}
