// Package commands contains the write operations of the procurement workflow.
// Every handler validates its command, serialises on the ids it touches, and
// runs all reads and writes in one unit of work: either every record of the
// cascade is saved or none is.
package commands

import (
	"context"

	"procurement/internal/core/ports"
)

type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	NegotiationRepoFactory interface {
		NegotiationRepository() ports.NegotiationRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RequestUoW is used by commands that only touch purchase requests.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// UoW spans all three record kinds; cascades need it.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   negotiation, err := uow.NegotiationRepository().Get(ctx, id)
	//   request, err := uow.RequestRepository().Get(ctx, negotiation.RequestID())
	//   // ... apply the workflow
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		RequestRepoFactory
		NegotiationRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// inTransaction runs fn between Begin and Commit. Any error rolls back.
func inTransaction(ctx context.Context, tx TxManager, fn func() error) error {
	if err := tx.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
