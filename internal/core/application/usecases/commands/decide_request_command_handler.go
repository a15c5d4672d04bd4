package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/request"

	"go.uber.org/zap"
)

type DecideRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	deps       Deps
}

func NewDecideRequestCommandHandler(uowFactory RequestUoWFactory, deps Deps) DecideRequestCommandHandler {
	return DecideRequestCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

func (h DecideRequestCommandHandler) Handle(ctx context.Context, cmd DecideRequestCommand) (err error) {
	name := "approve_request"
	if cmd.Decision() == request.Rejected {
		name = "reject_request"
	}
	defer func(start time.Time) { h.deps.observe(name, start, err) }(time.Now())

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

		if cmd.Decision() == request.Approved {
			aggregate.Approve()
		} else {
			aggregate.Reject()
		}

		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}

		h.deps.Logger.Info("purchase request decided",
			zap.String("requestId", aggregate.ID().String()),
			zap.Stringer("status", aggregate.Status()))
		return nil
	})
}
