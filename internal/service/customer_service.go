package service

import (
	"context"
	"time"

	"github.com/cassiomorais/movierental/internal/domain/customer"
	"github.com/rs/zerolog"
)

// CustomerService handles customer records.
type CustomerService struct {
	customerRepo customer.Repository
	logger       zerolog.Logger
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo customer.Repository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger.With().Str("component", "customer_service").Logger(),
	}
}

// CreateCustomerRequest holds the input for registering a customer.
type CreateCustomerRequest struct {
	Name        string
	Email       string
	Phone       *string
	DateOfBirth *time.Time
}

// Create validates and stores a new customer. The store enforces email
// uniqueness and reports errors.ErrDuplicateEmail.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*customer.Customer, error) {
	c, err := customer.New(req.Name, req.Email, req.Phone, req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("customer_id", c.ID).Msg("customer registered")
	return c, nil
}

// GetByID retrieves a customer by ID.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}
