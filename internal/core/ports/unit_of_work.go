package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command. Changes made through
// its repositories become visible to others only on Commit; Rollback, or any
// error before Commit, leaves no trace.
type UnitOfWork interface {
	// Begin blocks until the unit of work owns the scheduling state or ctx
	// is done.
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	// Rollback discards staged changes. Calling it after Commit is harmless.
	Rollback(ctx context.Context) error

	DriverRepository() DriverRepository
	RouteRepository() RouteRepository
	PendingQueue() PendingQueue
}
