package controller

import (
	"errors"
	"net/http"

	domainErrors "github.com/cassiomorais/movierental/internal/domain/errors"
	"github.com/cassiomorais/movierental/internal/infrastructure/observability"
	"github.com/cassiomorais/movierental/internal/service"
)

// RentalController handles rental-related HTTP requests.
type RentalController struct {
	rentalService *service.RentalService
	metrics       *observability.Metrics
}

// NewRentalController creates a new RentalController.
func NewRentalController(rentalService *service.RentalService, metrics *observability.Metrics) *RentalController {
	return &RentalController{rentalService: rentalService, metrics: metrics}
}

// Create handles POST /api/v1/rentals
func (h *RentalController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRentalRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.rentalService.Rent(r.Context(), service.RentMovieRequest{
		MovieID:       req.MovieID,
		CustomerID:    req.CustomerID,
		DaysRented:    req.DaysRented,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.metrics.RentalsTotal.WithLabelValues(rentOutcome(err)).Inc()
		writeError(w, err)
		return
	}

	h.metrics.RentalsTotal.WithLabelValues(observability.OutcomeOK).Inc()
	writeJSON(w, http.StatusCreated, FromRental(rec))
}

// Return handles POST /api/v1/rentals/{id}/return
func (h *RentalController) Return(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rental")
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.rentalService.Return(r.Context(), id)
	if err != nil {
		h.metrics.ReturnsTotal.WithLabelValues(returnOutcome(err)).Inc()
		writeError(w, err)
		return
	}

	h.metrics.ReturnsTotal.WithLabelValues(observability.OutcomeOK).Inc()
	writeJSON(w, http.StatusOK, FromRental(rec))
}

// Get handles GET /api/v1/rentals/{id}
func (h *RentalController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rental")
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.rentalService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromRental(rec))
}

// List handles GET /api/v1/rentals?customer_name=
func (h *RentalController) List(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("customer_name")

	rentals, err := h.rentalService.ListByCustomerNamePrefix(r.Context(), prefix)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*RentalResponse, 0, len(rentals))
	for _, rec := range rentals {
		resp = append(resp, FromRental(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

func rentOutcome(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrPaymentDeclined):
		return observability.OutcomeDeclined
	case errors.Is(err, domainErrors.ErrMovieUnavailable), errors.Is(err, domainErrors.ErrOutOfStock):
		return observability.OutcomeUnavailable
	case errors.Is(err, domainErrors.ErrMovieNotFound), errors.Is(err, domainErrors.ErrCustomerNotFound):
		return observability.OutcomeNotFound
	default:
		return observability.OutcomeError
	}
}

func returnOutcome(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrRentalNotFound), errors.Is(err, domainErrors.ErrMovieNotFound):
		return observability.OutcomeNotFound
	default:
		return observability.OutcomeError
	}
}
