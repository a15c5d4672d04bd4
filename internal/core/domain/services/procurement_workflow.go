package services

import (
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/request"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// NegotiationRevision carries the four editable negotiation fields.
type NegotiationRevision struct {
	FinalAmount     decimal.Decimal
	NegotiationDate time.Time
	Status          negotiation.Status
	Notes           string
}

// NegotiationOutcome lists what a negotiation revision changed besides the
// negotiation itself.
type NegotiationOutcome struct {
	Edge           negotiation.Edge
	RequestChanged bool
	CreatedOrder   *order.Order
}

// OrderRevision carries an order update. Nil amounts keep the stored amount,
// a nil status keeps the current one.
type OrderRevision struct {
	OrderDate       time.Time
	AmountPrimary   *decimal.Decimal
	AmountSecondary *decimal.Decimal
	Status          *order.Status
}

// OrderDraft describes a directly placed order.
type OrderDraft struct {
	ID              kernel.UUID
	Parties         kernel.Parties
	OrderDate       time.Time
	AmountPrimary   *decimal.Decimal
	AmountSecondary *decimal.Decimal
	Status          *order.Status
	RequestID       *kernel.UUID
	NegotiationID   *kernel.UUID
}

// RejectionOutcome reports which linked records the rejection cascade changed.
// Records already in their target status are left alone.
type RejectionOutcome struct {
	NegotiationChanged bool
	RequestChanged     bool
}

// ProcurementWorkflow applies the cross-record rules. It is stateless apart
// from the currency converter.
type ProcurementWorkflow struct {
	converter kernel.Converter
}

func NewProcurementWorkflow(converter kernel.Converter) ProcurementWorkflow {
	return ProcurementWorkflow{converter: converter}
}

func (w ProcurementWorkflow) Converter() kernel.Converter {
	return w.converter
}

// PromoteRequest opens a Pending negotiation for req, copying its snapshot and
// using its allocated amount as both initial quote and final amount. The
// request status is not changed.
func (w ProcurementWorkflow) PromoteRequest(
	req *request.Request,
	hasNegotiation bool,
	id kernel.UUID,
	now time.Time,
) (*negotiation.Negotiation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return w.OpenNegotiation(req, hasNegotiation, id, now, req.AllocatedAmount(), req.AllocatedAmount(), "")
}

// OpenNegotiation opens a Pending negotiation for req with caller supplied
// amounts. The same preconditions as PromoteRequest apply.
func (w ProcurementWorkflow) OpenNegotiation(
	req *request.Request,
	hasNegotiation bool,
	id kernel.UUID,
	negotiationDate time.Time,
	initialQuote decimal.Decimal,
	finalAmount decimal.Decimal,
	notes string,
) (*negotiation.Negotiation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := req.ValidatePromote(); err != nil {
		return nil, err
	}
	if hasNegotiation {
		return nil, errs.NewInvalidStateError("purchase request", "negotiation already exists")
	}

	return negotiation.NewNegotiation(id, req.ID(), req.Parties(), negotiationDate, initialQuote, finalAmount, notes)
}

// ReviseNegotiation writes the editable fields of n and runs the cascade bound
// to the crossed edge:
//   - EdgeCompleted approves req and, when hasOrder is false, creates a Pending
//     order for the final amount linked to req and n
//   - EdgeCancelled rejects req
//
// req may be nil when the request no longer exists; the order snapshot is then
// taken from the negotiation.
func (w ProcurementWorkflow) ReviseNegotiation(
	n *negotiation.Negotiation,
	req *request.Request,
	hasOrder bool,
	rev NegotiationRevision,
	orderID kernel.UUID,
	now time.Time,
) (NegotiationOutcome, error) {
	if err := n.Validate(); err != nil {
		return NegotiationOutcome{}, err
	}

	edge, err := n.Revise(rev.FinalAmount, rev.NegotiationDate, rev.Status, rev.Notes)
	if err != nil {
		return NegotiationOutcome{}, err
	}

	outcome := NegotiationOutcome{Edge: edge}

	//nolint:exhaustive // EdgeNone has no cascade
	switch edge {
	case negotiation.EdgeCompleted:
		parties := n.Parties()
		var requestID *kernel.UUID
		if req != nil {
			req.Approve()
			outcome.RequestChanged = true
			parties = req.Parties()
			id := req.ID()
			requestID = &id
		}

		if hasOrder {
			return outcome, nil
		}

		finalAmount := n.FinalAmount()
		amount, err := w.converter.Resolve(&finalAmount, nil)
		if err != nil {
			return NegotiationOutcome{}, err
		}

		negotiationID := n.ID()
		created, err := order.NewOrder(orderID, parties, now, amount, requestID, &negotiationID)
		if err != nil {
			return NegotiationOutcome{}, err
		}
		outcome.CreatedOrder = created

	case negotiation.EdgeCancelled:
		if req != nil {
			req.Reject()
			outcome.RequestChanged = true
		}
	}

	return outcome, nil
}

// PlaceOrder builds a directly created order. negotiationHasOrder must report
// whether draft.NegotiationID already owns an order.
func (w ProcurementWorkflow) PlaceOrder(draft OrderDraft, negotiationHasOrder bool) (*order.Order, error) {
	if draft.NegotiationID != nil && negotiationHasOrder {
		return nil, errs.NewInvalidStateError("negotiation", "purchase order already exists")
	}

	amount, err := w.converter.Resolve(draft.AmountPrimary, draft.AmountSecondary)
	if err != nil {
		return nil, err
	}

	status := order.Pending
	if draft.Status != nil {
		status = *draft.Status
	}

	return order.RestoreOrder(draft.ID, draft.Parties, draft.OrderDate, amount, status, draft.RequestID, draft.NegotiationID)
}

// CompleteOrder marks o Completed. Completion does not propagate.
func (w ProcurementWorkflow) CompleteOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	o.Complete()
	return nil
}

// RejectOrder marks o Rejected; on the Rejected edge the linked negotiation
// and request are cascaded. n and req may be nil when o has no such link.
func (w ProcurementWorkflow) RejectOrder(o *order.Order, n *negotiation.Negotiation, req *request.Request) (RejectionOutcome, error) {
	if err := o.Validate(); err != nil {
		return RejectionOutcome{}, err
	}

	if o.Reject() != order.EdgeRejected {
		return RejectionOutcome{}, nil
	}
	return w.CascadeRejection(n, req), nil
}

// ReviseOrder applies an update to o. Snapshot and links are ignored. The
// rejection cascade runs when the update crosses the Rejected edge.
func (w ProcurementWorkflow) ReviseOrder(
	o *order.Order,
	rev OrderRevision,
	n *negotiation.Negotiation,
	req *request.Request,
) (RejectionOutcome, error) {
	if err := o.Validate(); err != nil {
		return RejectionOutcome{}, err
	}

	var amount *kernel.DualAmount
	if rev.AmountPrimary != nil || rev.AmountSecondary != nil {
		resolved, err := w.converter.Resolve(rev.AmountPrimary, rev.AmountSecondary)
		if err != nil {
			return RejectionOutcome{}, err
		}
		amount = &resolved
	}

	edge, err := o.Revise(rev.OrderDate, amount, rev.Status)
	if err != nil {
		return RejectionOutcome{}, err
	}

	if edge != order.EdgeRejected {
		return RejectionOutcome{}, nil
	}
	return w.CascadeRejection(n, req), nil
}

// RemoveOrder runs the rejection cascade unconditionally before o is deleted.
func (w ProcurementWorkflow) RemoveOrder(o *order.Order, n *negotiation.Negotiation, req *request.Request) (RejectionOutcome, error) {
	if err := o.Validate(); err != nil {
		return RejectionOutcome{}, err
	}
	return w.CascadeRejection(n, req), nil
}

// CascadeRejection cancels n and rejects req. Either may be nil.
func (w ProcurementWorkflow) CascadeRejection(n *negotiation.Negotiation, req *request.Request) RejectionOutcome {
	var outcome RejectionOutcome

	if n != nil && n.Status() != negotiation.Cancelled {
		n.Cancel()
		outcome.NegotiationChanged = true
	}

	if req != nil && req.Status() != request.Rejected {
		req.Reject()
		outcome.RequestChanged = true
	}

	return outcome
}

// ValidateRequestRemoval refuses to delete a request that still owns a negotiation.
func (w ProcurementWorkflow) ValidateRequestRemoval(hasNegotiation bool) error {
	if hasNegotiation {
		return errs.NewInvalidStateError("purchase request", "negotiation is linked to the request")
	}
	return nil
}

// ValidateNegotiationRemoval refuses to delete a negotiation that still owns an order.
func (w ProcurementWorkflow) ValidateNegotiationRemoval(hasOrder bool) error {
	if hasOrder {
		return errs.NewInvalidStateError("negotiation", "purchase order is linked to the negotiation")
	}
	return nil
}
