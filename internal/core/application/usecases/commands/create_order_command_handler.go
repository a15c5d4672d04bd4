package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/services"

	"go.uber.org/zap"
)

// CreateOrderCommandHandler stores a directly placed order. The initial
// status does not cascade to the linked records.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	deps       Deps
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, deps Deps) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (err error) {
	defer func(start time.Time) { h.deps.observe("create_order", start, err) }(time.Now())

	if err = cmd.Validate(); err != nil {
		return err
	}

	orderID := cmd.OrderID()
	unlock := h.deps.Locks.LockAll(idKeys(&orderID, cmd.NegotiationID(), cmd.RequestID())...)
	defer unlock()

	uow := h.uowFactory.Create()
	return inTransaction(ctx, uow, func() error {
		if id := cmd.RequestID(); id != nil {
			if _, err := uow.RequestRepository().Get(ctx, *id); err != nil {
				return err
			}
		}

		negotiationHasOrder := false
		if id := cmd.NegotiationID(); id != nil {
			if _, err := uow.NegotiationRepository().Get(ctx, *id); err != nil {
				return err
			}
			existing, err := uow.OrderRepository().FindByNegotiation(ctx, *id)
			if err != nil {
				return err
			}
			negotiationHasOrder = existing != nil
		}

		created, err := h.deps.Workflow.PlaceOrder(services.OrderDraft{
			ID:              orderID,
			Parties:         cmd.Parties(),
			OrderDate:       cmd.OrderDate(),
			AmountPrimary:   cmd.AmountPrimary(),
			AmountSecondary: cmd.AmountSecondary(),
			Status:          cmd.Status(),
			RequestID:       cmd.RequestID(),
			NegotiationID:   cmd.NegotiationID(),
		}, negotiationHasOrder)
		if err != nil {
			return err
		}

		if err = uow.OrderRepository().Add(ctx, created); err != nil {
			return err
		}

		h.deps.Logger.Info("purchase order created",
			zap.String("orderId", created.ID().String()),
			zap.Stringer("status", created.Status()))
		return nil
	})
}
