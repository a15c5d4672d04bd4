package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/services"

	"go.uber.org/zap"
)

// ChangeOrderCommandHandler runs the status shortcuts of an order.
//   - complete: the order becomes Completed, nothing else changes
//   - reject: the order becomes Rejected; the first rejection cancels the
//     negotiation and rejects the request
//   - delete: the cascade of a rejection runs, then the order is removed
type ChangeOrderCommandHandler struct {
	uowFactory UoWFactory
	deps       Deps
}

func NewChangeOrderCommandHandler(uowFactory UoWFactory, deps Deps) ChangeOrderCommandHandler {
	return ChangeOrderCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

func (h ChangeOrderCommandHandler) Handle(ctx context.Context, cmd ChangeOrderCommand) (err error) {
	defer func(start time.Time) { h.deps.observe(cmd.Action().String(), start, err) }(time.Now())

	if err = cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.deps.lockChain(ctx, func(ctx context.Context) ([]string, error) {
		return orderChainKeys(ctx, h.uowFactory.Create(), cmd.OrderID())
	})
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	return inTransaction(ctx, uow, func() error {
		o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if cmd.Action() == OrderComplete {
			if err = h.deps.Workflow.CompleteOrder(o); err != nil {
				return err
			}
			if err = uow.OrderRepository().Update(ctx, o); err != nil {
				return err
			}
			h.deps.Logger.Info("purchase order completed", zap.String("orderId", o.ID().String()))
			return nil
		}

		n, req, err := loadOrderLinks(ctx, uow, o)
		if err != nil {
			return err
		}

		var outcome services.RejectionOutcome
		if cmd.Action() == OrderDelete {
			outcome, err = h.deps.Workflow.RemoveOrder(o, n, req)
		} else {
			outcome, err = h.deps.Workflow.RejectOrder(o, n, req)
		}
		if err != nil {
			return err
		}

		if err = saveRejection(ctx, uow, outcome, n, req); err != nil {
			return err
		}
		if cmd.Action() == OrderDelete {
			err = uow.OrderRepository().Delete(ctx, o.ID())
		} else {
			err = uow.OrderRepository().Update(ctx, o)
		}
		if err != nil {
			return err
		}

		h.deps.recordRejection(outcome)
		h.deps.Logger.Info("purchase order changed",
			zap.String("orderId", o.ID().String()),
			zap.Stringer("action", cmd.Action()),
			zap.Bool("negotiationCancelled", outcome.NegotiationChanged),
			zap.Bool("requestRejected", outcome.RequestChanged))
		return nil
	})
}
