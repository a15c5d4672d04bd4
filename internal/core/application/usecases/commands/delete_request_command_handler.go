package commands

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DeleteRequestCommandHandler removes a request that no negotiation refers to.
type DeleteRequestCommandHandler struct {
	uowFactory UoWFactory
	deps       Deps
}

func NewDeleteRequestCommandHandler(uowFactory UoWFactory, deps Deps) DeleteRequestCommandHandler {
	return DeleteRequestCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

func (h DeleteRequestCommandHandler) Handle(ctx context.Context, cmd DeleteRequestCommand) (err error) {
	defer func(start time.Time) { h.deps.observe("delete_request", start, err) }(time.Now())

	if err = cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.deps.lockChain(ctx, func(ctx context.Context) ([]string, error) {
		return requestChainKeys(ctx, h.uowFactory.Create(), cmd.RequestID())
	})
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	return inTransaction(ctx, uow, func() error {
		aggregate, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
		if err != nil {
			return err
		}

		linked, err := uow.NegotiationRepository().FindByRequest(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if err = h.deps.Workflow.ValidateRequestRemoval(linked != nil); err != nil {
			return err
		}

		if err = uow.RequestRepository().Delete(ctx, aggregate.ID()); err != nil {
			return err
		}

		h.deps.Logger.Info("purchase request deleted", zap.String("requestId", aggregate.ID().String()))
		return nil
	})
}
