package payment

import (
	"time"

	"github.com/rs/zerolog"
)

// Canonical gateway names. Selection is case-insensitive; these are the
// forms persisted on rentals.
const (
	MethodCreditCard   = "credit-card"
	MethodMobileWallet = "mobile-wallet"
	MethodPayPal       = "paypal"
)

// NewCreditCardGateway simulates a credit card processor (95% success).
func NewCreditCardGateway(logger zerolog.Logger, opts ...Option) Gateway {
	return newGateway(MethodCreditCard, logger, successRate(19, 20), 250*time.Millisecond, opts...)
}

// NewMobileWalletGateway simulates a mobile wallet provider (95% success).
func NewMobileWalletGateway(logger zerolog.Logger, opts ...Option) Gateway {
	return newGateway(MethodMobileWallet, logger, successRate(19, 20), 200*time.Millisecond, opts...)
}

// NewPayPalGateway simulates a PayPal-style provider (90% success).
func NewPayPalGateway(logger zerolog.Logger, opts ...Option) Gateway {
	return newGateway(MethodPayPal, logger, successRate(9, 10), 200*time.Millisecond, opts...)
}
