package commands

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DeleteNegotiationCommandHandler removes a negotiation that has no order.
// The request it belongs to is not touched.
type DeleteNegotiationCommandHandler struct {
	uowFactory UoWFactory
	deps       Deps
}

func NewDeleteNegotiationCommandHandler(uowFactory UoWFactory, deps Deps) DeleteNegotiationCommandHandler {
	return DeleteNegotiationCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

func (h DeleteNegotiationCommandHandler) Handle(ctx context.Context, cmd DeleteNegotiationCommand) (err error) {
	defer func(start time.Time) { h.deps.observe("delete_negotiation", start, err) }(time.Now())

	if err = cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.deps.lockChain(ctx, func(ctx context.Context) ([]string, error) {
		return negotiationChainKeys(ctx, h.uowFactory.Create(), cmd.NegotiationID())
	})
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	return inTransaction(ctx, uow, func() error {
		n, err := uow.NegotiationRepository().Get(ctx, cmd.NegotiationID())
		if err != nil {
			return err
		}

		linked, err := uow.OrderRepository().FindByNegotiation(ctx, n.ID())
		if err != nil {
			return err
		}
		if err = h.deps.Workflow.ValidateNegotiationRemoval(linked != nil); err != nil {
			return err
		}

		if err = uow.NegotiationRepository().Delete(ctx, n.ID()); err != nil {
			return err
		}

		h.deps.Logger.Info("negotiation deleted", zap.String("negotiationId", n.ID().String()))
		return nil
	})
}
