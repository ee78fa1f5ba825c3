package rental

import (
	"time"

	"github.com/cassiomorais/movierental/internal/domain/errors"
)

// Bounds on the rental period at creation.
const (
	MinDaysRented = 1
	MaxDaysRented = 30
)

// Rental ties a customer, a movie and a payment together.
//
// The lifecycle has two states: Active (ReturnDate nil) and Returned
// (ReturnDate set). The transition is one-way and fires at most once.
// TotalCostCents is computed once at creation and never recomputed.
type Rental struct {
	ID             int64
	MovieID        int64
	CustomerID     int64
	RentalDate     time.Time
	ReturnDate     *time.Time
	DaysRented     int
	TotalCostCents int64
	PaymentMethod  string
}

// New creates an active rental. rentalPriceCents is the movie's per-day rate;
// now comes from the caller's clock so the workflow stays testable.
func New(movieID, customerID int64, daysRented int, rentalPriceCents int64, paymentMethod string, now time.Time) (*Rental, error) {
	if daysRented < MinDaysRented || daysRented > MaxDaysRented {
		return nil, errors.NewValidationError("days_rented", "must be between 1 and 30")
	}
	if paymentMethod == "" {
		return nil, errors.ErrEmptyPaymentMethod
	}

	return &Rental{
		MovieID:        movieID,
		CustomerID:     customerID,
		RentalDate:     now,
		ReturnDate:     nil,
		DaysRented:     daysRented,
		TotalCostCents: rentalPriceCents * int64(daysRented),
		PaymentMethod:  paymentMethod,
	}, nil
}

// IsActive reports whether the rental has not been returned yet.
func (r *Rental) IsActive() bool {
	return r.ReturnDate == nil
}

// MarkReturned closes the rental. A second call fails with ErrAlreadyReturned.
func (r *Rental) MarkReturned(now time.Time) error {
	if r.ReturnDate != nil {
		return errors.ErrAlreadyReturned
	}
	r.ReturnDate = &now
	return nil
}

// DueDate is the date the rental should have been returned by.
func (r *Rental) DueDate() time.Time {
	return r.RentalDate.AddDate(0, 0, r.DaysRented)
}

// IsOverdue reports whether an active rental is past its due date.
func (r *Rental) IsOverdue(now time.Time) bool {
	return r.IsActive() && now.After(r.DueDate())
}
