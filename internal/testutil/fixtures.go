package testutil

import (
	"time"

	"github.com/cassiomorais/movierental/internal/domain/customer"
	"github.com/cassiomorais/movierental/internal/domain/movie"
	"github.com/cassiomorais/movierental/internal/domain/rental"
)

func NewTestMovie(title string, stock int, rentalPriceCents int64) *movie.Movie {
	now := time.Now()
	return &movie.Movie{
		Title:            title,
		Description:      "test movie",
		Stock:            stock,
		IsAvailable:      stock > 0,
		RentalPriceCents: rentalPriceCents,
		SalePriceCents:   rentalPriceCents * 4,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func NewTestCustomer(name, email string) *customer.Customer {
	now := time.Now()
	return &customer.Customer{
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestRental(movieID, customerID int64, daysRented int, totalCostCents int64, rentedAt time.Time) *rental.Rental {
	return &rental.Rental{
		MovieID:        movieID,
		CustomerID:     customerID,
		RentalDate:     rentedAt,
		DaysRented:     daysRented,
		TotalCostCents: totalCostCents,
		PaymentMethod:  "credit-card",
	}
}

// FixedClock returns the same instant on every call.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
