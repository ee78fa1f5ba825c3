package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainErrors "github.com/cassiomorais/movierental/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		payload      any
		expectedBody string
	}{
		{
			name:         "simple map",
			status:       http.StatusOK,
			payload:      map[string]string{"message": "hello"},
			expectedBody: `{"message":"hello"}`,
		},
		{
			name:         "error response",
			status:       http.StatusBadRequest,
			payload:      ErrorResponse{Error: "bad request", Code: "invalid_input"},
			expectedBody: `{"error":"bad request","code":"invalid_input"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeJSON(w, tt.status, tt.payload)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWriteError_ValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	err := domainErrors.NewValidationError("email", "must be valid email")

	writeError(w, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	json.NewDecoder(w.Body).Decode(&response)
	assert.Equal(t, "validation_error", response.Code)
	assert.Contains(t, response.Error, "email")
}

func TestWriteError_DomainErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "movie not found",
			err:            domainErrors.ErrMovieNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "not_found",
		},
		{
			name:           "customer not found",
			err:            domainErrors.ErrCustomerNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "not_found",
		},
		{
			name:           "rental not found",
			err:            domainErrors.ErrRentalNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "not_found",
		},
		{
			name:           "movie unavailable",
			err:            domainErrors.ErrMovieUnavailable,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "movie_unavailable",
		},
		{
			name:           "out of stock",
			err:            domainErrors.ErrOutOfStock,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "out_of_stock",
		},
		{
			name:           "already returned",
			err:            domainErrors.ErrAlreadyReturned,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "already_returned",
		},
		{
			name:           "payment declined",
			err:            domainErrors.ErrPaymentDeclined,
			expectedStatus: http.StatusPaymentRequired,
			expectedCode:   "payment_declined",
		},
		{
			name:           "unknown payment method",
			err:            domainErrors.ErrUnknownPaymentMethod,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "unknown_payment_method",
		},
		{
			name:           "empty payment method",
			err:            domainErrors.ErrEmptyPaymentMethod,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "empty_payment_method",
		},
		{
			name:           "duplicate email",
			err:            domainErrors.ErrDuplicateEmail,
			expectedStatus: http.StatusConflict,
			expectedCode:   "duplicate_email",
		},
		{
			name:           "gateway unavailable",
			err:            domainErrors.ErrGatewayUnavailable,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "gateway_unavailable",
		},
		{
			name:           "invalid input",
			err:            fmt.Errorf("invalid rental id: %w", domainErrors.ErrInvalidInput),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "invalid_input",
		},
		{
			name:           "wrapped sentinel",
			err:            errors.Join(errors.New("payment failed using paypal"), domainErrors.ErrPaymentDeclined),
			expectedStatus: http.StatusPaymentRequired,
			expectedCode:   "payment_declined",
		},
		{
			name:           "unknown error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeError(w, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response ErrorResponse
			json.NewDecoder(w.Body).Decode(&response)
			assert.Equal(t, tt.expectedCode, response.Code)
		})
	}
}

func TestWriteError_PersistenceFailure(t *testing.T) {
	w := httptest.NewRecorder()
	err := domainErrors.NewDomainError(domainErrors.CodePersistenceFailure, "persisting rental", errors.New("connection reset"))

	writeError(w, err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response ErrorResponse
	json.NewDecoder(w.Body).Decode(&response)
	assert.Equal(t, domainErrors.CodePersistenceFailure, response.Code)
	// The wrapped cause is not leaked to the client.
	assert.NotContains(t, response.Error, "connection reset")
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		body := `{"movie_id":1,"customer_id":2,"days_rented":3,"payment_method":"credit-card"}`
		r := httptest.NewRequest(http.MethodPost, "/api/v1/rentals", strings.NewReader(body))

		var req CreateRentalRequest
		require.NoError(t, decodeAndValidate(r, &req))
		assert.Equal(t, int64(1), req.MovieID)
		assert.Equal(t, 3, req.DaysRented)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/rentals", bytes.NewReader([]byte("{")))

		var req CreateRentalRequest
		err := decodeAndValidate(r, &req)
		var valErr *domainErrors.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("days out of range", func(t *testing.T) {
		body := `{"movie_id":1,"customer_id":2,"days_rented":31,"payment_method":"credit-card"}`
		r := httptest.NewRequest(http.MethodPost, "/api/v1/rentals", strings.NewReader(body))

		var req CreateRentalRequest
		err := decodeAndValidate(r, &req)
		var valErr *domainErrors.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("missing payment method", func(t *testing.T) {
		body := `{"movie_id":1,"customer_id":2,"days_rented":3}`
		r := httptest.NewRequest(http.MethodPost, "/api/v1/rentals", strings.NewReader(body))

		var req CreateRentalRequest
		err := decodeAndValidate(r, &req)
		var valErr *domainErrors.ValidationError
		assert.ErrorAs(t, err, &valErr)
	})
}

func TestMoneyFloatConversion(t *testing.T) {
	assert.Equal(t, int64(1500), floatToCents(15.00))
	assert.Equal(t, int64(501), floatToCents(5.01))
	assert.Equal(t, 15.0, centsToFloat(1500))
	assert.Equal(t, 0.99, centsToFloat(99))
}
