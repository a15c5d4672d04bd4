package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of one command. Every repository it
// hands out is bound to the transaction opened by Begin.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It is a no-op after Commit.
	Rollback(ctx context.Context) error

	RequestRepository() RequestRepository

	NegotiationRepository() NegotiationRepository

	OrderRepository() OrderRepository
}
