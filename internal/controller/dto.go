package controller

import (
	"math"
	"time"

	"github.com/cassiomorais/movierental/internal/domain/customer"
	"github.com/cassiomorais/movierental/internal/domain/movie"
	"github.com/cassiomorais/movierental/internal/domain/rental"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (float64 for money, validation tags).
// Controllers convert these to service layer DTOs before calling business logic.

// CreateMovieRequest holds the input for adding a movie to the catalog.
type CreateMovieRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Stock       int     `json:"stock" validate:"gte=0"`
	RentalPrice float64 `json:"rental_price" validate:"gte=0"`
	SalePrice   float64 `json:"sale_price" validate:"gte=0"`
}

// CreateCustomerRequest holds the input for registering a customer.
type CreateCustomerRequest struct {
	Name        string     `json:"name" validate:"required,max=100"`
	Email       string     `json:"email" validate:"required,email,max=255"`
	Phone       *string    `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

// CreateRentalRequest holds the input for renting a movie.
type CreateRentalRequest struct {
	MovieID       int64  `json:"movie_id" validate:"required,gt=0"`
	CustomerID    int64  `json:"customer_id" validate:"required,gt=0"`
	DaysRented    int    `json:"days_rented" validate:"required,min=1,max=30"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// --- Response DTOs ---

// MovieResponse represents a movie in API responses.
type MovieResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Stock       int       `json:"stock"`
	IsAvailable bool      `json:"is_available"`
	RentalPrice float64   `json:"rental_price"`
	SalePrice   float64   `json:"sale_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RentalResponse represents a rental in API responses.
type RentalResponse struct {
	ID            int64      `json:"id"`
	MovieID       int64      `json:"movie_id"`
	CustomerID    int64      `json:"customer_id"`
	RentalDate    time.Time  `json:"rental_date"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	DueDate       time.Time  `json:"due_date"`
	DaysRented    int        `json:"days_rented"`
	TotalCost     float64    `json:"total_cost"`
	PaymentMethod string     `json:"payment_method"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Conversion helpers ---

// FromMovie converts a domain movie to API response.
func FromMovie(m *movie.Movie) *MovieResponse {
	return &MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Stock:       m.Stock,
		IsAvailable: m.IsAvailable,
		RentalPrice: centsToFloat(m.RentalPriceCents),
		SalePrice:   centsToFloat(m.SalePriceCents),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromCustomer converts a domain customer to API response.
func FromCustomer(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		DateOfBirth: c.DateOfBirth,
		CreatedAt:   c.CreatedAt,
	}
}

// FromRental converts a domain rental to API response.
func FromRental(r *rental.Rental) *RentalResponse {
	return &RentalResponse{
		ID:            r.ID,
		MovieID:       r.MovieID,
		CustomerID:    r.CustomerID,
		RentalDate:    r.RentalDate,
		ReturnDate:    r.ReturnDate,
		DueDate:       r.DueDate(),
		DaysRented:    r.DaysRented,
		TotalCost:     centsToFloat(r.TotalCostCents),
		PaymentMethod: r.PaymentMethod,
	}
}

// floatToCents converts a float64 amount to int64 cents.
func floatToCents(f float64) int64 {
	return int64(math.Round(f * 100))
}

// centsToFloat converts int64 cents to float64 for JSON output.
func centsToFloat(cents int64) float64 {
	return float64(cents) / 100
}
