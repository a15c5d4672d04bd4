package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/services"

	"go.uber.org/zap"
)

// UpdateOrderCommandHandler applies UpdateOrderCommand. Moving the order into
// Rejected cancels its negotiation and rejects its request.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	deps       Deps
}

func NewUpdateOrderCommandHandler(uowFactory UoWFactory, deps Deps) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (err error) {
	defer func(start time.Time) { h.deps.observe("update_order", start, err) }(time.Now())

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

		n, req, err := loadOrderLinks(ctx, uow, o)
		if err != nil {
			return err
		}

		outcome, err := h.deps.Workflow.ReviseOrder(o, services.OrderRevision{
			OrderDate:       cmd.OrderDate(),
			AmountPrimary:   cmd.AmountPrimary(),
			AmountSecondary: cmd.AmountSecondary(),
			Status:          cmd.Status(),
		}, n, req)
		if err != nil {
			return err
		}

		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
		if err = saveRejection(ctx, uow, outcome, n, req); err != nil {
			return err
		}

		h.deps.recordRejection(outcome)
		h.deps.Logger.Info("purchase order updated",
			zap.String("orderId", o.ID().String()),
			zap.Stringer("status", o.Status()))
		return nil
	})
}
