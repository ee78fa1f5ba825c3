package errors

import (
	"errors"
	"fmt"
)

var (
	// Catalog errors
	ErrMovieNotFound    = errors.New("movie not found")
	ErrMovieUnavailable = errors.New("movie is not available for rent")
	ErrOutOfStock       = errors.New("no rentable copies in stock")

	// Customer errors
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDuplicateEmail   = errors.New("email already registered")

	// Rental errors
	ErrRentalNotFound  = errors.New("rental not found")
	ErrAlreadyReturned = errors.New("rental has already been returned")

	// Payment errors
	ErrPaymentDeclined      = errors.New("payment declined")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrEmptyPaymentMethod   = errors.New("payment method cannot be empty")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// Codes carried by DomainError wrappers so callers can tell a storage
// failure apart from an unexpected processing failure.
const (
	CodeRentalProcessing   = "rental_processing"
	CodePersistenceFailure = "persistence_failure"
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
