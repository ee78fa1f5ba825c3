package service

import "context"

// TransactionManager defines the interface for transaction management.
// Services use this to group multiple repository writes into one atomic
// commit: everything staged inside fn becomes durable together or not at all.
type TransactionManager interface {
	// WithTransaction executes the given function within a database
	// transaction. If fn returns an error, the transaction is rolled back.
	// Otherwise, it is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
