package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/core/domain/services"

	"go.uber.org/zap"
)

// UpdateNegotiationCommandHandler saves the editable fields and, when the
// status crosses into Completed or Cancelled, cascades to the request and
// creates the order in the same transaction.
type UpdateNegotiationCommandHandler struct {
	uowFactory UoWFactory
	deps       Deps
}

func NewUpdateNegotiationCommandHandler(uowFactory UoWFactory, deps Deps) UpdateNegotiationCommandHandler {
	return UpdateNegotiationCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

func (h UpdateNegotiationCommandHandler) Handle(ctx context.Context, cmd UpdateNegotiationCommand) (err error) {
	defer func(start time.Time) { h.deps.observe("update_negotiation", start, err) }(time.Now())

	if err = cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.deps.lockChain(ctx, func(ctx context.Context) ([]string, error) {
		keys, err := negotiationChainKeys(ctx, h.uowFactory.Create(), cmd.NegotiationID())
		orderID := cmd.OrderID()
		return append(keys, idKeys(&orderID)...), err
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

		req, err := optional(uow.RequestRepository().Get(ctx, n.RequestID()))
		if err != nil {
			return err
		}

		existing, err := uow.OrderRepository().FindByNegotiation(ctx, n.ID())
		if err != nil {
			return err
		}

		outcome, err := h.deps.Workflow.ReviseNegotiation(n, req, existing != nil, services.NegotiationRevision{
			FinalAmount:     cmd.FinalAmount(),
			NegotiationDate: cmd.NegotiationDate(),
			Status:          cmd.Status(),
			Notes:           cmd.Notes(),
		}, cmd.OrderID(), h.deps.Clock())
		if err != nil {
			return err
		}

		if err = uow.NegotiationRepository().Update(ctx, n); err != nil {
			return err
		}
		if outcome.RequestChanged {
			if err = uow.RequestRepository().Update(ctx, req); err != nil {
				return err
			}
		}
		if outcome.CreatedOrder != nil {
			if err = uow.OrderRepository().Add(ctx, outcome.CreatedOrder); err != nil {
				return err
			}
		}

		h.logOutcome(n, outcome)
		return nil
	})
}

func (h UpdateNegotiationCommandHandler) logOutcome(n *negotiation.Negotiation, outcome services.NegotiationOutcome) {
	fields := []zap.Field{
		zap.String("negotiationId", n.ID().String()),
		zap.Stringer("status", n.Status()),
		zap.Stringer("edge", outcome.Edge),
	}

	switch outcome.Edge {
	case negotiation.EdgeCompleted:
		h.deps.Metrics.Cascade("request_approved")
		if outcome.CreatedOrder != nil {
			h.deps.Metrics.Cascade("order_created")
			fields = append(fields, zap.String("orderId", outcome.CreatedOrder.ID().String()))
		}
	case negotiation.EdgeCancelled:
		h.deps.Metrics.Cascade("request_rejected")
	}

	h.deps.Logger.Info("negotiation updated", fields...)
}
