package commands

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/request"
	"procurement/internal/core/domain/services"
)

// A chain is the request, negotiation and order that share one procurement.
// Handlers lock the whole chain before a cascade may touch it.

func requestChainKeys(ctx context.Context, uow UoW, requestID kernel.UUID) ([]string, error) {
	n, err := uow.NegotiationRepository().FindByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	keys := idKeys(&requestID)
	if n != nil {
		nid := n.ID()
		keys = append(keys, idKeys(&nid)...)
	}
	return keys, nil
}

func negotiationChainKeys(ctx context.Context, uow UoW, negotiationID kernel.UUID) ([]string, error) {
	n, err := optional(uow.NegotiationRepository().Get(ctx, negotiationID))
	if err != nil || n == nil {
		return idKeys(&negotiationID), err
	}

	requestID := n.RequestID()
	keys := idKeys(&negotiationID, &requestID)

	o, err := uow.OrderRepository().FindByNegotiation(ctx, negotiationID)
	if err != nil {
		return nil, err
	}
	if o != nil {
		oid := o.ID()
		keys = append(keys, idKeys(&oid)...)
	}
	return keys, nil
}

func orderChainKeys(ctx context.Context, uow UoW, orderID kernel.UUID) ([]string, error) {
	o, err := optional(uow.OrderRepository().Get(ctx, orderID))
	if err != nil || o == nil {
		return idKeys(&orderID), err
	}
	return idKeys(&orderID, o.NegotiationID(), o.RequestID()), nil
}

// loadOrderLinks reads the negotiation and request an order points at.
// Links to records that were removed come back nil.
func loadOrderLinks(ctx context.Context, uow UoW, o *order.Order) (*negotiation.Negotiation, *request.Request, error) {
	var (
		n   *negotiation.Negotiation
		req *request.Request
		err error
	)

	if id := o.NegotiationID(); id != nil {
		if n, err = optional(uow.NegotiationRepository().Get(ctx, *id)); err != nil {
			return nil, nil, err
		}
	}
	if id := o.RequestID(); id != nil {
		if req, err = optional(uow.RequestRepository().Get(ctx, *id)); err != nil {
			return nil, nil, err
		}
	}
	return n, req, nil
}

// saveRejection writes the records the rejection cascade changed.
func saveRejection(
	ctx context.Context,
	uow UoW,
	outcome services.RejectionOutcome,
	n *negotiation.Negotiation,
	req *request.Request,
) error {
	if outcome.NegotiationChanged {
		if err := uow.NegotiationRepository().Update(ctx, n); err != nil {
			return err
		}
	}
	if outcome.RequestChanged {
		if err := uow.RequestRepository().Update(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
