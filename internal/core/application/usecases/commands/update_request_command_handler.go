package commands

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// UpdateRequestCommandHandler applies UpdateRequestCommand. Negotiations and
// orders keep the snapshot they copied earlier.
type UpdateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	deps       Deps
}

func NewUpdateRequestCommandHandler(uowFactory RequestUoWFactory, deps Deps) UpdateRequestCommandHandler {
	return UpdateRequestCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

func (h UpdateRequestCommandHandler) Handle(ctx context.Context, cmd UpdateRequestCommand) (err error) {
	defer func(start time.Time) { h.deps.observe("update_request", start, err) }(time.Now())

	if err = cmd.Validate(); err != nil {
		return err
	}

	unlock := h.deps.Locks.LockAll(cmd.RequestID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	return inTransaction(ctx, uow, func() error {
		repo := uow.RequestRepository()

		aggregate, err := repo.Get(ctx, cmd.RequestID())
		if err != nil {
			return err
		}

		if err = aggregate.Revise(cmd.Parties(), cmd.RequestDate(), cmd.AllocatedAmount(), cmd.Status()); err != nil {
			return err
		}

		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}

		h.deps.Logger.Info("purchase request updated",
			zap.String("requestId", aggregate.ID().String()),
			zap.Stringer("status", aggregate.Status()))
		return nil
	})
}
