package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	domainErrors "github.com/cassiomorais/movierental/internal/domain/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domainErrors.ErrMovieNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrCustomerNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrRentalNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrMovieUnavailable, http.StatusUnprocessableEntity, "movie_unavailable"},
	{domainErrors.ErrOutOfStock, http.StatusUnprocessableEntity, "out_of_stock"},
	{domainErrors.ErrAlreadyReturned, http.StatusUnprocessableEntity, "already_returned"},
	{domainErrors.ErrPaymentDeclined, http.StatusPaymentRequired, "payment_declined"},
	{domainErrors.ErrUnknownPaymentMethod, http.StatusBadRequest, "unknown_payment_method"},
	{domainErrors.ErrEmptyPaymentMethod, http.StatusBadRequest, "empty_payment_method"},
	{domainErrors.ErrDuplicateEmail, http.StatusConflict, "duplicate_email"},
	{domainErrors.ErrGatewayUnavailable, http.StatusServiceUnavailable, "gateway_unavailable"},
	{domainErrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		resp.Code = "validation_error"
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp.Code = m.code
			writeJSON(w, m.status, resp)
			return
		}
	}

	var domainErr *domainErrors.DomainError
	if errors.As(err, &domainErr) {
		resp.Code = domainErr.Code
		resp.Error = domainErr.Message
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	resp.Code = "internal_error"
	resp.Error = "internal server error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

// pathID parses the {id} route parameter. what names the resource in the
// error message.
func pathID(r *http.Request, what string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id: %w", what, domainErrors.ErrInvalidInput)
	}
	return id, nil
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return domainErrors.NewValidationError(ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}
