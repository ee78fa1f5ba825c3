package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cassiomorais/movierental/internal/domain/customer"
	domainErrors "github.com/cassiomorais/movierental/internal/domain/errors"
	"github.com/cassiomorais/movierental/internal/domain/movie"
	"github.com/cassiomorais/movierental/internal/domain/rental"
)

// --- Movie Repository Mock ---

// MockMovieRepository is a mock implementation of movie.Repository.
type MockMovieRepository struct {
	mu     sync.Mutex
	movies map[int64]*movie.Movie
	nextID int64

	CreateFunc  func(ctx context.Context, m *movie.Movie) error
	GetByIDFunc func(ctx context.Context, id int64) (*movie.Movie, error)
	UpdateFunc  func(ctx context.Context, m *movie.Movie) error
	ListFunc    func(ctx context.Context) ([]*movie.Movie, error)
}

func NewMockMovieRepository() *MockMovieRepository {
	return &MockMovieRepository{movies: make(map[int64]*movie.Movie), nextID: 1}
}

// AddMovie pre-populates the mock with a movie, assigning an ID if unset.
func (r *MockMovieRepository) AddMovie(m *movie.Movie) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == 0 {
		m.ID = r.nextID
	}
	if m.ID >= r.nextID {
		r.nextID = m.ID + 1
	}
	r.movies[m.ID] = m
}

func (r *MockMovieRepository) Create(ctx context.Context, m *movie.Movie) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, m)
	}
	r.AddMovie(m)
	return nil
}

func (r *MockMovieRepository) GetByID(ctx context.Context, id int64) (*movie.Movie, error) {
	if r.GetByIDFunc != nil {
		return r.GetByIDFunc(ctx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, domainErrors.ErrMovieNotFound
	}
	return m, nil
}

func (r *MockMovieRepository) Update(ctx context.Context, m *movie.Movie) error {
	if r.UpdateFunc != nil {
		return r.UpdateFunc(ctx, m)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[m.ID]; !ok {
		return domainErrors.ErrMovieNotFound
	}
	r.movies[m.ID] = m
	return nil
}

func (r *MockMovieRepository) List(ctx context.Context) ([]*movie.Movie, error) {
	if r.ListFunc != nil {
		return r.ListFunc(ctx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*movie.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		result = append(result, m)
	}
	return result, nil
}

// GetMovieByID returns the stored movie (test helper, no context needed).
func (r *MockMovieRepository) GetMovieByID(id int64) *movie.Movie {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.movies[id]
}

// --- Customer Repository Mock ---

// MockCustomerRepository is a mock implementation of customer.Repository.
type MockCustomerRepository struct {
	mu        sync.Mutex
	customers map[int64]*customer.Customer
	nextID    int64

	CreateFunc  func(ctx context.Context, c *customer.Customer) error
	GetByIDFunc func(ctx context.Context, id int64) (*customer.Customer, error)
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[int64]*customer.Customer), nextID: 1}
}

// AddCustomer pre-populates the mock with a customer, assigning an ID if unset.
func (r *MockCustomerRepository) AddCustomer(c *customer.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
	}
	if c.ID >= r.nextID {
		r.nextID = c.ID + 1
	}
	r.customers[c.ID] = c
}

func (r *MockCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, c)
	}
	r.mu.Lock()
	for _, existing := range r.customers {
		if existing.Email == c.Email {
			r.mu.Unlock()
			return domainErrors.ErrDuplicateEmail
		}
	}
	r.mu.Unlock()
	r.AddCustomer(c)
	return nil
}

func (r *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	if r.GetByIDFunc != nil {
		return r.GetByIDFunc(ctx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, domainErrors.ErrCustomerNotFound
	}
	return c, nil
}

// --- Rental Repository Mock ---

// MockRentalRepository is a mock implementation of rental.Repository.
// Customer names for prefix lookups come from the linked customer repository.
type MockRentalRepository struct {
	mu      sync.Mutex
	rentals map[int64]*rental.Rental
	nextID  int64

	Customers *MockCustomerRepository

	CreateFunc                   func(ctx context.Context, rec *rental.Rental) error
	GetByIDFunc                  func(ctx context.Context, id int64) (*rental.Rental, error)
	UpdateFunc                   func(ctx context.Context, rec *rental.Rental) error
	ListByCustomerNamePrefixFunc func(ctx context.Context, prefix string) ([]*rental.Rental, error)
	ListOverdueFunc              func(ctx context.Context, asOf time.Time, limit int) ([]*rental.Rental, error)
}

func NewMockRentalRepository() *MockRentalRepository {
	return &MockRentalRepository{rentals: make(map[int64]*rental.Rental), nextID: 1}
}

// AddRental pre-populates the mock with a rental, assigning an ID if unset.
func (r *MockRentalRepository) AddRental(rec *rental.Rental) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == 0 {
		rec.ID = r.nextID
	}
	if rec.ID >= r.nextID {
		r.nextID = rec.ID + 1
	}
	r.rentals[rec.ID] = rec
}

func (r *MockRentalRepository) Create(ctx context.Context, rec *rental.Rental) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, rec)
	}
	r.AddRental(rec)
	return nil
}

func (r *MockRentalRepository) GetByID(ctx context.Context, id int64) (*rental.Rental, error) {
	if r.GetByIDFunc != nil {
		return r.GetByIDFunc(ctx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.rentals[id]
	if !ok {
		return nil, domainErrors.ErrRentalNotFound
	}
	return rec, nil
}

func (r *MockRentalRepository) Update(ctx context.Context, rec *rental.Rental) error {
	if r.UpdateFunc != nil {
		return r.UpdateFunc(ctx, rec)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rentals[rec.ID]; !ok {
		return domainErrors.ErrRentalNotFound
	}
	r.rentals[rec.ID] = rec
	return nil
}

func (r *MockRentalRepository) ListByCustomerNamePrefix(ctx context.Context, prefix string) ([]*rental.Rental, error) {
	if r.ListByCustomerNamePrefixFunc != nil {
		return r.ListByCustomerNamePrefixFunc(ctx, prefix)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*rental.Rental
	for _, rec := range r.rentals {
		if r.Customers == nil {
			continue
		}
		c, err := r.Customers.GetByID(ctx, rec.CustomerID)
		if err != nil {
			continue
		}
		if strings.HasPrefix(strings.ToLower(c.Name), strings.ToLower(prefix)) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (r *MockRentalRepository) ListOverdue(ctx context.Context, asOf time.Time, limit int) ([]*rental.Rental, error) {
	if r.ListOverdueFunc != nil {
		return r.ListOverdueFunc(ctx, asOf, limit)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*rental.Rental
	for _, rec := range r.rentals {
		if rec.IsActive() && rec.IsOverdue(asOf) {
			result = append(result, rec)
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

// CountRentals returns the number of stored rentals (test helper).
func (r *MockRentalRepository) CountRentals() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rentals)
}

// --- Transaction Manager Mock ---

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	WithTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.WithTransactionFunc != nil {
		return m.WithTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}
