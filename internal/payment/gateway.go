package payment

import (
	"context"
	"math/rand"
	"time"

	"github.com/cassiomorais/movierental/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Gateway is an external payment-processing strategy identified by name.
// A declined charge is an ordinary (false, nil) result; errors are reserved
// for transport-level trouble such as a cancelled context or an open breaker.
type Gateway interface {
	// Name returns the canonical gateway name.
	Name() string
	// ProcessPayment charges amountCents and reports whether it succeeded.
	ProcessPayment(ctx context.Context, amountCents int64, description string) (bool, error)
}

// Decider decides the outcome of a simulated charge. Production gateways use
// a randomized default; tests inject a deterministic one.
type Decider func(amountCents int64) bool

// gateway is the shared envelope: wait out the simulated provider latency,
// log the attempt, then delegate the pass/fail decision to the strategy.
type gateway struct {
	name    string
	latency time.Duration
	decide  Decider
	logger  zerolog.Logger
}

// Option configures a gateway.
type Option func(*gateway)

// WithLatency overrides the simulated provider latency.
func WithLatency(d time.Duration) Option {
	return func(g *gateway) { g.latency = d }
}

// WithDecider overrides the pass/fail decision function.
func WithDecider(d Decider) Option {
	return func(g *gateway) { g.decide = d }
}

func newGateway(name string, logger zerolog.Logger, decide Decider, latency time.Duration, opts ...Option) *gateway {
	g := &gateway{
		name:    name,
		latency: latency,
		decide:  decide,
		logger:  logger.With().Str("gateway", name).Logger(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func (g *gateway) Name() string { return g.name }

func (g *gateway) ProcessPayment(ctx context.Context, amountCents int64, description string) (bool, error) {
	// A zero amount is a legitimate charge for free rentals.
	if amountCents < 0 {
		return false, errors.NewValidationError("amount", "cannot be negative")
	}

	select {
	case <-time.After(g.latency):
	case <-ctx.Done():
		return false, ctx.Err()
	}

	ref := uuid.New().String()[:8]
	g.logger.Info().
		Int64("amount_cents", amountCents).
		Str("description", description).
		Str("ref", ref).
		Msg("processing payment")

	ok := g.decide(amountCents)
	if ok {
		g.logger.Info().Str("ref", ref).Msg("payment processed successfully")
	} else {
		g.logger.Warn().Str("ref", ref).Msg("payment declined")
	}
	return ok, nil
}

// successRate returns a Decider that passes n out of every of attempts.
func successRate(n, of int) Decider {
	return func(int64) bool { return rand.Intn(of) < n }
}
