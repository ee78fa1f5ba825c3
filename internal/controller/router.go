package controller

import (
	"time"

	"github.com/cassiomorais/movierental/internal/infrastructure/config"
	"github.com/cassiomorais/movierental/internal/infrastructure/observability"
	redisinfra "github.com/cassiomorais/movierental/internal/infrastructure/redis"
	customMW "github.com/cassiomorais/movierental/internal/middleware"
	"github.com/cassiomorais/movierental/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	Pool             *pgxpool.Pool
	RedisClient      *redis.Client
	MovieService     *service.MovieService
	CustomerService  *service.CustomerService
	RentalService    *service.RentalService
	IdempotencyStore *redisinfra.IdempotencyStore
	Metrics          *observability.Metrics
	CORSConfig       config.CORSConfig
	RequestsPerMin   int
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.RateLimit(deps.RequestsPerMin))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.Pool, deps.RedisClient)
	movieH := NewMovieController(deps.MovieService)
	customerH := NewCustomerController(deps.CustomerService)
	rentalH := NewRentalController(deps.RentalService, deps.Metrics)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating endpoints.
		idempotencyMW := customMW.Idempotency(deps.IdempotencyStore)

		// Catalog
		r.Post("/movies", movieH.Create)
		r.Get("/movies/{id}", movieH.Get)
		r.Get("/movies", movieH.List)

		// Customers
		r.Post("/customers", customerH.Create)
		r.Get("/customers/{id}", customerH.Get)

		// Rentals
		r.With(idempotencyMW).Post("/rentals", rentalH.Create)
		r.Post("/rentals/{id}/return", rentalH.Return)
		r.Get("/rentals/{id}", rentalH.Get)
		r.Get("/rentals", rentalH.List)
	})

	return r
}
