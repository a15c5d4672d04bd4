package order

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of the commitment stage.
//
// Order follows these invariants:
//   - Must have a valid identifier, party snapshot and order date
//   - Amount is held in both currencies
//   - Request and negotiation links are optional and never change
type Order struct {
	id            kernel.UUID
	parties       kernel.Parties
	orderDate     time.Time
	amount        kernel.DualAmount
	status        Status
	requestID     *kernel.UUID
	negotiationID *kernel.UUID

	isConstructed bool
}

// NewOrder creates a Pending order. requestID and negotiationID may be nil.
func NewOrder(
	id kernel.UUID,
	parties kernel.Parties,
	orderDate time.Time,
	amount kernel.DualAmount,
	requestID *kernel.UUID,
	negotiationID *kernel.UUID,
) (*Order, error) {
	return RestoreOrder(id, parties, orderDate, amount, Pending, requestID, negotiationID)
}

// RestoreOrder rebuilds an order read from storage. It is also used for direct
// creation with a caller chosen status.
func RestoreOrder(
	id kernel.UUID,
	parties kernel.Parties,
	orderDate time.Time,
	amount kernel.DualAmount,
	status Status,
	requestID *kernel.UUID,
	negotiationID *kernel.UUID,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setParties(parties),
		o.setOrderDate(orderDate),
		o.setAmount(amount),
		o.setStatus(status),
		o.setRequestID(requestID),
		o.setNegotiationID(negotiationID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Parties() kernel.Parties {
	return o.parties
}

func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

func (o *Order) Amount() kernel.DualAmount {
	return o.amount
}

func (o *Order) Status() Status {
	return o.status
}

// RequestID returns the originating request, nil when the order was created without one.
func (o *Order) RequestID() *kernel.UUID {
	return o.requestID
}

// NegotiationID returns the originating negotiation, nil when the order was created without one.
func (o *Order) NegotiationID() *kernel.UUID {
	return o.negotiationID
}

// Complete sets the status to Completed from any status.
func (o *Order) Complete() {
	o.status = Completed
}

// Reject sets the status to Rejected and returns the edge crossed.
func (o *Order) Reject() Edge {
	edge := o.status.EdgeTo(Rejected)
	o.status = Rejected
	return edge
}

// Revise applies an update. The snapshot and links are left untouched. A zero
// date keeps the stored date, a nil amount keeps the stored one, a nil status
// keeps the current one. On error nothing is written.
func (o *Order) Revise(orderDate time.Time, amount *kernel.DualAmount, status *Status) (Edge, error) {
	next := *o
	var setters []error
	if !orderDate.IsZero() {
		setters = append(setters, next.setOrderDate(orderDate))
	}
	if amount != nil {
		setters = append(setters, next.setAmount(*amount))
	}
	if status != nil {
		setters = append(setters, next.setStatus(*status))
	}
	if err := errors.Join(setters...); err != nil {
		return EdgeNone, err
	}

	edge := o.status.EdgeTo(next.status)
	*o = next
	return edge, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParties(parties kernel.Parties) error {
	if err := parties.Validate(); err != nil {
		return err
	}
	o.parties = parties
	return nil
}

func (o *Order) setOrderDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("orderDate")
	}
	o.orderDate = date
	return nil
}

func (o *Order) setAmount(amount kernel.DualAmount) error {
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("amount", err)
	}
	o.amount = amount
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setRequestID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("requestId", err)
	}
	cp := *id
	o.requestID = &cp
	return nil
}

func (o *Order) setNegotiationID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("negotiationId", err)
	}
	cp := *id
	o.negotiationID = &cp
	return nil
}
