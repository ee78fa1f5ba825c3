package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cassiomorais/movierental/internal/bootstrap"
	"github.com/cassiomorais/movierental/internal/controller"
	infraRedis "github.com/cassiomorais/movierental/internal/infrastructure/redis"
	"github.com/cassiomorais/movierental/internal/payment"
	"github.com/cassiomorais/movierental/internal/repository/postgres"
	"github.com/cassiomorais/movierental/internal/service"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, "movierental-api", "movierental")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Repositories ---
	movieRepo := postgres.NewMovieRepository(app.Pool)
	customerRepo := postgres.NewCustomerRepository(app.Pool)
	rentalRepo := postgres.NewRentalRepository(app.Pool)
	txManager := postgres.NewTxManager(app.Pool)
	idempotencyStore := infraRedis.NewIdempotencyStore(app.Redis, app.Config.Payment.IdempotencyTTL)

	// --- Services ---
	var gatewayOpts []payment.Option
	if app.Config.Payment.GatewayLatency > 0 {
		gatewayOpts = append(gatewayOpts, payment.WithLatency(app.Config.Payment.GatewayLatency))
	}
	registry := payment.NewRegistry(
		payment.NewCreditCardGateway(app.Logger, gatewayOpts...),
		payment.NewMobileWalletGateway(app.Logger, gatewayOpts...),
		payment.NewPayPalGateway(app.Logger, gatewayOpts...),
	).WithMetrics(app.Metrics)
	clock := service.SystemClock()
	movieService := service.NewMovieService(movieRepo, app.Logger)
	customerService := service.NewCustomerService(customerRepo, app.Logger)
	rentalService := service.NewRentalService(rentalRepo, movieRepo, customerRepo, txManager, registry, clock, app.Logger)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		Pool:             app.Pool,
		RedisClient:      app.Redis,
		MovieService:     movieService,
		CustomerService:  customerService,
		RentalService:    rentalService,
		IdempotencyStore: idempotencyStore,
		Metrics:          app.Metrics,
		CORSConfig:       app.Config.Server.CORS,
		RequestsPerMin:   app.Config.Server.RequestsPerMinute,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	if app.Config.Sweeper.Enabled {
		sweeper := service.NewOverdueSweeper(
			rentalRepo,
			clock,
			app.Metrics,
			app.Logger,
			app.Config.Sweeper.Interval,
			app.Config.Sweeper.BatchSize,
		)
		g.Go(func() error {
			return sweeper.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		app.Logger.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		app.Logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
	app.Logger.Info().Msg("Server exited")
}
