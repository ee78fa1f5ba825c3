package customer

import (
	"strings"
	"time"

	"github.com/cassiomorais/movierental/internal/domain/errors"
)

const (
	maxNameLength  = 100
	maxEmailLength = 255
)

// Customer represents a registered renter. Email uniqueness is enforced by
// the store's unique index, not here.
type Customer struct {
	ID          int64
	Name        string
	Email       string
	Phone       *string
	DateOfBirth *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates a customer after validating its fields.
func New(name, email string, phone *string, dateOfBirth *time.Time) (*Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if len(name) > maxNameLength {
		return nil, errors.NewValidationError("name", "cannot exceed 100 characters")
	}
	if email == "" {
		return nil, errors.NewValidationError("email", "cannot be empty")
	}
	if len(email) > maxEmailLength || !strings.Contains(email, "@") {
		return nil, errors.NewValidationError("email", "must be a valid email address")
	}

	now := time.Now()
	return &Customer{
		Name:        name,
		Email:       email,
		Phone:       phone,
		DateOfBirth: dateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
