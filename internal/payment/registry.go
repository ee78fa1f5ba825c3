package payment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cassiomorais/movierental/internal/domain/errors"
	"github.com/cassiomorais/movierental/internal/infrastructure/observability"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// Registry maps payment-method names to gateways. Selection is
// case-insensitive and fails closed on unknown or empty names. Each gateway
// call runs through a per-gateway circuit breaker.
type Registry struct {
	gateways map[string]Gateway
	breakers map[string]*gobreaker.CircuitBreaker[bool]
	metrics  *observability.Metrics
}

// NewRegistry builds a registry from the given gateways.
func NewRegistry(gateways ...Gateway) *Registry {
	r := &Registry{
		gateways: make(map[string]Gateway),
		breakers: make(map[string]*gobreaker.CircuitBreaker[bool]),
	}
	for _, g := range gateways {
		r.Register(g)
	}
	return r
}

// DefaultRegistry builds the production registry with the three named
// gateways and their randomized deciders.
func DefaultRegistry(logger zerolog.Logger) *Registry {
	return NewRegistry(
		NewCreditCardGateway(logger),
		NewMobileWalletGateway(logger),
		NewPayPalGateway(logger),
	)
}

// WithMetrics attaches payment attempt and breaker state metrics.
func (r *Registry) WithMetrics(m *observability.Metrics) *Registry {
	r.metrics = m
	return r
}

// Register adds a gateway and its circuit breaker.
func (r *Registry) Register(g Gateway) {
	key := strings.ToLower(g.Name())
	r.gateways[key] = g
	r.breakers[key] = gobreaker.NewCircuitBreaker[bool](gobreaker.Settings{
		Name:        g.Name(),
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if r.metrics != nil {
				r.metrics.BreakerState.WithLabelValues(name).Set(breakerStateValue(to))
			}
		},
	})
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 2
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 0
	}
}

// Select resolves a payment-method name to its gateway. Unknown names fail
// with ErrUnknownPaymentMethod, empty or whitespace names with
// ErrEmptyPaymentMethod.
func (r *Registry) Select(name string) (Gateway, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.ErrEmptyPaymentMethod
	}

	key := strings.ToLower(trimmed)
	g, ok := r.gateways[key]
	if !ok {
		return nil, fmt.Errorf("no gateway registered for %q: %w", name, errors.ErrUnknownPaymentMethod)
	}
	return &breakerGateway{gateway: g, breaker: r.breakers[key], registry: r}, nil
}

// Methods returns the registered method names, sorted.
func (r *Registry) Methods() []string {
	names := make([]string, 0, len(r.gateways))
	for _, g := range r.gateways {
		names = append(names, g.Name())
	}
	sort.Strings(names)
	return names
}

// breakerGateway runs gateway calls through a circuit breaker. A declined
// payment is a successful call from the breaker's point of view; only
// transport errors count as failures.
type breakerGateway struct {
	gateway  Gateway
	breaker  *gobreaker.CircuitBreaker[bool]
	registry *Registry
}

func (b *breakerGateway) Name() string { return b.gateway.Name() }

func (b *breakerGateway) ProcessPayment(ctx context.Context, amountCents int64, description string) (bool, error) {
	ok, err := b.breaker.Execute(func() (bool, error) {
		return b.gateway.ProcessPayment(ctx, amountCents, description)
	})
	if err != nil {
		b.recordAttempt("error")
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return false, fmt.Errorf("%s: %w", b.gateway.Name(), errors.ErrGatewayUnavailable)
		}
		return false, err
	}
	if ok {
		b.recordAttempt("approved")
	} else {
		b.recordAttempt("declined")
	}
	return ok, nil
}

func (b *breakerGateway) recordAttempt(result string) {
	if b.registry.metrics != nil {
		b.registry.metrics.PaymentAttemptsTotal.WithLabelValues(b.gateway.Name(), result).Inc()
	}
}
