package service

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/cassiomorais/movierental/internal/domain/errors"
	"github.com/cassiomorais/movierental/internal/domain/movie"
	"github.com/cassiomorais/movierental/internal/payment"
	"github.com/cassiomorais/movierental/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test Helpers ---

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// fixedOutcomeRegistry builds a registry whose gateways all resolve
// instantly with the given outcome.
func fixedOutcomeRegistry(succeed bool) *payment.Registry {
	logger := zerolog.Nop()
	opts := []payment.Option{
		payment.WithLatency(0),
		payment.WithDecider(func(int64) bool { return succeed }),
	}
	return payment.NewRegistry(
		payment.NewCreditCardGateway(logger, opts...),
		payment.NewMobileWalletGateway(logger, opts...),
		payment.NewPayPalGateway(logger, opts...),
	)
}

func setupRentalService(registry *payment.Registry) (*RentalService, *testutil.MockRentalRepository, *testutil.MockMovieRepository, *testutil.MockCustomerRepository, *testutil.MockTransactionManager) {
	rentalRepo := testutil.NewMockRentalRepository()
	movieRepo := testutil.NewMockMovieRepository()
	customerRepo := testutil.NewMockCustomerRepository()
	rentalRepo.Customers = customerRepo
	txManager := testutil.NewMockTransactionManager()

	svc := NewRentalService(rentalRepo, movieRepo, customerRepo, txManager, registry,
		testutil.FixedClock{Instant: testNow}, zerolog.Nop())
	return svc, rentalRepo, movieRepo, customerRepo, txManager
}

// --- Rent Tests ---

func TestRent_Success(t *testing.T) {
	svc, rentalRepo, movieRepo, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	m := testutil.NewTestMovie("The Matrix", 1, 500)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	r, err := svc.Rent(ctx, RentMovieRequest{
		MovieID:       m.ID,
		CustomerID:    c.ID,
		DaysRented:    3,
		PaymentMethod: "credit-card",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1500), r.TotalCostCents)
	assert.Equal(t, m.ID, r.MovieID)
	assert.Equal(t, c.ID, r.CustomerID)
	assert.Equal(t, "credit-card", r.PaymentMethod)
	assert.Equal(t, testNow, r.RentalDate)
	assert.Nil(t, r.ReturnDate)

	stored := movieRepo.GetMovieByID(m.ID)
	assert.Equal(t, 0, stored.Stock)
	assert.False(t, stored.IsAvailable)
	assert.Equal(t, 1, rentalRepo.CountRentals())
}

func TestRent_FreeRental(t *testing.T) {
	svc, rentalRepo, movieRepo, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	m := testutil.NewTestMovie("Public Domain Classic", 1, 0)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	r, err := svc.Rent(ctx, RentMovieRequest{
		MovieID:       m.ID,
		CustomerID:    c.ID,
		DaysRented:    3,
		PaymentMethod: "credit-card",
	})
	require.NoError(t, err)

	// A zero per-day price charges zero and the rental goes through.
	assert.Equal(t, int64(0), r.TotalCostCents)
	assert.Equal(t, 0, movieRepo.GetMovieByID(m.ID).Stock)
	assert.Equal(t, 1, rentalRepo.CountRentals())
}

func TestRent_MethodNameIsCaseInsensitive(t *testing.T) {
	svc, _, movieRepo, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	m := testutil.NewTestMovie("Heat", 2, 400)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Bob", "bob@example.com")
	customerRepo.AddCustomer(c)

	r, err := svc.Rent(ctx, RentMovieRequest{
		MovieID:       m.ID,
		CustomerID:    c.ID,
		DaysRented:    2,
		PaymentMethod: "PayPal",
	})
	require.NoError(t, err)

	// The canonical form is persisted, not the caller's spelling.
	assert.Equal(t, "paypal", r.PaymentMethod)
}

func TestRent_PaymentDeclined(t *testing.T) {
	svc, rentalRepo, movieRepo, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(false))
	ctx := context.Background()

	m := testutil.NewTestMovie("The Matrix", 1, 500)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	_, err := svc.Rent(ctx, RentMovieRequest{
		MovieID:       m.ID,
		CustomerID:    c.ID,
		DaysRented:    3,
		PaymentMethod: "credit-card",
	})
	require.ErrorIs(t, err, domainErrors.ErrPaymentDeclined)

	// Nothing was mutated.
	stored := movieRepo.GetMovieByID(m.ID)
	assert.Equal(t, 1, stored.Stock)
	assert.True(t, stored.IsAvailable)
	assert.Equal(t, 0, rentalRepo.CountRentals())
}

func TestRent_MovieOutOfStock(t *testing.T) {
	svc, rentalRepo, movieRepo, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	m := testutil.NewTestMovie("Alien", 0, 500)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	for _, method := range []string{"credit-card", "mobile-wallet", "paypal"} {
		_, err := svc.Rent(ctx, RentMovieRequest{
			MovieID:       m.ID,
			CustomerID:    c.ID,
			DaysRented:    3,
			PaymentMethod: method,
		})
		assert.ErrorIs(t, err, domainErrors.ErrMovieUnavailable, "method %s", method)
	}
	assert.Equal(t, 0, rentalRepo.CountRentals())
}

func TestRent_StaleAvailabilityFlag(t *testing.T) {
	svc, rentalRepo, movieRepo, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	// The flag says rentable but no copies are left; rows like this come
	// from writes outside the entity.
	m := testutil.NewTestMovie("Alien", 0, 500)
	m.IsAvailable = true
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	_, err := svc.Rent(ctx, RentMovieRequest{
		MovieID:       m.ID,
		CustomerID:    c.ID,
		DaysRented:    3,
		PaymentMethod: "credit-card",
	})
	assert.ErrorIs(t, err, domainErrors.ErrOutOfStock)
	assert.Equal(t, 0, rentalRepo.CountRentals())
}

func TestRent_MovieNotFound(t *testing.T) {
	svc, _, _, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	_, err := svc.Rent(ctx, RentMovieRequest{
		MovieID:       999,
		CustomerID:    c.ID,
		DaysRented:    3,
		PaymentMethod: "credit-card",
	})
	assert.ErrorIs(t, err, domainErrors.ErrMovieNotFound)
}

func TestRent_CustomerNotFound(t *testing.T) {
	svc, _, movieRepo, _, _ := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	m := testutil.NewTestMovie("The Matrix", 1, 500)
	movieRepo.AddMovie(m)

	_, err := svc.Rent(ctx, RentMovieRequest{
		MovieID:       m.ID,
		CustomerID:    999,
		DaysRented:    3,
		PaymentMethod: "credit-card",
	})
	assert.ErrorIs(t, err, domainErrors.ErrCustomerNotFound)
}

func TestRent_UnknownPaymentMethod(t *testing.T) {
	svc, rentalRepo, movieRepo, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	m := testutil.NewTestMovie("The Matrix", 1, 500)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	_, err := svc.Rent(ctx, RentMovieRequest{
		MovieID:       m.ID,
		CustomerID:    c.ID,
		DaysRented:    3,
		PaymentMethod: "bitcoin",
	})
	require.ErrorIs(t, err, domainErrors.ErrUnknownPaymentMethod)
	assert.Equal(t, 0, rentalRepo.CountRentals())
	assert.Equal(t, 1, movieRepo.GetMovieByID(m.ID).Stock)
}

func TestRent_EmptyPaymentMethod(t *testing.T) {
	svc, _, movieRepo, _, _ := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	// Lookups must not run before the method is validated.
	movieRepo.GetByIDFunc = func(ctx context.Context, id int64) (*movie.Movie, error) {
		t.Fatal("movie lookup ran before input validation")
		return nil, nil
	}

	for _, method := range []string{"", "   "} {
		_, err := svc.Rent(ctx, RentMovieRequest{
			MovieID:       1,
			CustomerID:    1,
			DaysRented:    3,
			PaymentMethod: method,
		})
		assert.ErrorIs(t, err, domainErrors.ErrEmptyPaymentMethod)
	}
}

func TestRent_DaysRentedOutOfBounds(t *testing.T) {
	svc, _, _, _, _ := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	var valErr *domainErrors.ValidationError
	for _, days := range []int{0, -1, 31, 365} {
		_, err := svc.Rent(ctx, RentMovieRequest{
			MovieID:       1,
			CustomerID:    1,
			DaysRented:    days,
			PaymentMethod: "credit-card",
		})
		require.Error(t, err, "days=%d", days)
		assert.ErrorAs(t, err, &valErr, "days=%d", days)
	}
}

func TestRent_PersistenceFailure(t *testing.T) {
	svc, rentalRepo, movieRepo, customerRepo, txManager := setupRentalService(fixedOutcomeRegistry(true))
	ctx := context.Background()

	m := testutil.NewTestMovie("The Matrix", 1, 500)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	txManager.WithTransactionFunc = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return errors.New("connection reset")
	}

	_, err := svc.Rent(ctx, RentMovieRequest{
		MovieID:       m.ID,
		CustomerID:    c.ID,
		DaysRented:    3,
		PaymentMethod: "credit-card",
	})
	require.Error(t, err)

	var domErr *domainErrors.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, domainErrors.CodePersistenceFailure, domErr.Code)
	assert.Equal(t, 0, rentalRepo.CountRentals())
}

func TestRent_ContextCancelled(t *testing.T) {
	logger := zerolog.Nop()
	registry := payment.NewRegistry(
		payment.NewCreditCardGateway(logger,
			payment.WithLatency(time.Second),
			payment.WithDecider(func(int64) bool { return true })),
	)
	svc, _, movieRepo, customerRepo, _ := setupRentalService(registry)

	m := testutil.NewTestMovie("The Matrix", 1, 500)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Rent(ctx, RentMovieRequest{
		MovieID:       m.ID,
		CustomerID:    c.ID,
		DaysRented:    3,
		PaymentMethod: "credit-card",
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// --- Return Tests ---

func rentOnce(t *testing.T, svc *RentalService, movieID, customerID int64) int64 {
	t.Helper()
	r, err := svc.Rent(context.Background(), RentMovieRequest{
		MovieID:       movieID,
		CustomerID:    customerID,
		DaysRented:    3,
		PaymentMethod: "credit-card",
	})
	require.NoError(t, err)
	return r.ID
}

func TestReturn_RestoresStockAndAvailability(t *testing.T) {
	svc, _, movieRepo, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(true))

	m := testutil.NewTestMovie("The Matrix", 1, 500)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	rentalID := rentOnce(t, svc, m.ID, c.ID)
	require.Equal(t, 0, movieRepo.GetMovieByID(m.ID).Stock)

	returned, err := svc.Return(context.Background(), rentalID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, testNow, *returned.ReturnDate)

	stored := movieRepo.GetMovieByID(m.ID)
	assert.Equal(t, 1, stored.Stock)
	assert.True(t, stored.IsAvailable)
}

func TestReturn_Twice(t *testing.T) {
	svc, _, movieRepo, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(true))

	m := testutil.NewTestMovie("The Matrix", 1, 500)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	rentalID := rentOnce(t, svc, m.ID, c.ID)

	_, err := svc.Return(context.Background(), rentalID)
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), rentalID)
	require.ErrorIs(t, err, domainErrors.ErrAlreadyReturned)

	// The second return did not double-increment the stock.
	assert.Equal(t, 1, movieRepo.GetMovieByID(m.ID).Stock)
}

func TestReturn_RentalNotFound(t *testing.T) {
	svc, _, _, _, _ := setupRentalService(fixedOutcomeRegistry(true))

	_, err := svc.Return(context.Background(), 999)
	assert.ErrorIs(t, err, domainErrors.ErrRentalNotFound)
}

func TestReturn_PersistenceFailure(t *testing.T) {
	svc, _, movieRepo, customerRepo, txManager := setupRentalService(fixedOutcomeRegistry(true))

	m := testutil.NewTestMovie("The Matrix", 1, 500)
	movieRepo.AddMovie(m)
	c := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(c)

	rentalID := rentOnce(t, svc, m.ID, c.ID)

	txManager.WithTransactionFunc = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return errors.New("connection reset")
	}

	_, err := svc.Return(context.Background(), rentalID)
	var domErr *domainErrors.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, domainErrors.CodePersistenceFailure, domErr.Code)
}

// --- Query Tests ---

func TestListByCustomerNamePrefix(t *testing.T) {
	svc, _, movieRepo, customerRepo, _ := setupRentalService(fixedOutcomeRegistry(true))

	m := testutil.NewTestMovie("The Matrix", 5, 500)
	movieRepo.AddMovie(m)
	alice := testutil.NewTestCustomer("Alice", "alice@example.com")
	customerRepo.AddCustomer(alice)
	bob := testutil.NewTestCustomer("Bob", "bob@example.com")
	customerRepo.AddCustomer(bob)

	rentOnce(t, svc, m.ID, alice.ID)
	rentOnce(t, svc, m.ID, bob.ID)

	rentals, err := svc.ListByCustomerNamePrefix(context.Background(), "ali")
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	assert.Equal(t, alice.ID, rentals[0].CustomerID)
}
