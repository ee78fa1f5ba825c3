package controller

import (
	"net/http"

	"github.com/cassiomorais/movierental/internal/service"
)

// CustomerController handles customer HTTP requests.
type CustomerController struct {
	customerService *service.CustomerService
}

// NewCustomerController creates a new CustomerController.
func NewCustomerController(customerService *service.CustomerService) *CustomerController {
	return &CustomerController{customerService: customerService}
}

// Create handles POST /api/v1/customers
func (h *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.customerService.Create(r.Context(), service.CreateCustomerRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, FromCustomer(c))
}

// Get handles GET /api/v1/customers/{id}
func (h *CustomerController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "customer")
	if err != nil {
		writeError(w, err)
		return
	}

	c, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromCustomer(c))
}
