package negotiation

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrNegotiationIsNotConstructed = errors.New("Negotiation must be created via NewNegotiation or RestoreNegotiation constructor")

// Negotiation is the aggregate root of the bargaining stage. It belongs to
// exactly one request and is never moved to another one.
type Negotiation struct {
	id              kernel.UUID
	requestID       kernel.UUID
	parties         kernel.Parties
	negotiationDate time.Time
	initialQuote    decimal.Decimal
	finalAmount     decimal.Decimal
	status          Status
	notes           string

	isConstructed bool
}

// NewNegotiation opens a Pending negotiation for requestID. parties and
// initialQuote are the request's snapshot at this moment.
func NewNegotiation(
	id kernel.UUID,
	requestID kernel.UUID,
	parties kernel.Parties,
	negotiationDate time.Time,
	initialQuote decimal.Decimal,
	finalAmount decimal.Decimal,
	notes string,
) (*Negotiation, error) {
	n := &Negotiation{
		status:        Pending,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setRequestID(requestID),
		n.setParties(parties),
		n.setNegotiationDate(negotiationDate),
		n.setInitialQuote(initialQuote),
		n.setFinalAmount(finalAmount),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNegotiation rebuilds a negotiation read from storage.
func RestoreNegotiation(
	id kernel.UUID,
	requestID kernel.UUID,
	parties kernel.Parties,
	negotiationDate time.Time,
	initialQuote decimal.Decimal,
	finalAmount decimal.Decimal,
	status Status,
	notes string,
) (*Negotiation, error) {
	n := &Negotiation{
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setRequestID(requestID),
		n.setParties(parties),
		n.setNegotiationDate(negotiationDate),
		n.setInitialQuote(initialQuote),
		n.setFinalAmount(finalAmount),
		n.setStatus(status),
	); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *Negotiation) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNegotiationIsNotConstructed
	}
	return nil
}

func (n *Negotiation) IsEqual(other *Negotiation) bool {
	return other != nil && n.id.IsEqual(other.id)
}

func (n *Negotiation) ID() kernel.UUID {
	return n.id
}

func (n *Negotiation) RequestID() kernel.UUID {
	return n.requestID
}

func (n *Negotiation) Parties() kernel.Parties {
	return n.parties
}

func (n *Negotiation) NegotiationDate() time.Time {
	return n.negotiationDate
}

func (n *Negotiation) InitialQuote() decimal.Decimal {
	return n.initialQuote
}

func (n *Negotiation) FinalAmount() decimal.Decimal {
	return n.finalAmount
}

func (n *Negotiation) Status() Status {
	return n.status
}

func (n *Negotiation) Notes() string {
	return n.notes
}

// Savings is initial quote minus final amount. Negative when the final amount grew.
func (n *Negotiation) Savings() decimal.Decimal {
	return n.initialQuote.Sub(n.finalAmount)
}

// Revise writes the four editable fields and returns the edge crossed by the
// status change. On error nothing is written.
func (n *Negotiation) Revise(finalAmount decimal.Decimal, negotiationDate time.Time, status Status, notes string) (Edge, error) {
	next := *n
	if err := errors.Join(
		next.setFinalAmount(finalAmount),
		next.setNegotiationDate(negotiationDate),
		next.setStatus(status),
	); err != nil {
		return EdgeNone, err
	}
	next.notes = notes

	edge := n.status.EdgeTo(status)
	*n = next
	return edge, nil
}

// Cancel moves the negotiation to Cancelled and returns the edge crossed.
func (n *Negotiation) Cancel() Edge {
	edge := n.status.EdgeTo(Cancelled)
	n.status = Cancelled
	return edge
}

func (n *Negotiation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Negotiation) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requestId", err)
	}
	n.requestID = id
	return nil
}

func (n *Negotiation) setParties(parties kernel.Parties) error {
	if err := parties.Validate(); err != nil {
		return err
	}
	n.parties = parties
	return nil
}

func (n *Negotiation) setNegotiationDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("negotiationDate")
	}
	n.negotiationDate = date
	return nil
}

func (n *Negotiation) setInitialQuote(amount decimal.Decimal) error {
	if err := kernel.ValidatePositiveAmount("initialQuoteAmount", amount); err != nil {
		return err
	}
	n.initialQuote = amount
	return nil
}

func (n *Negotiation) setFinalAmount(amount decimal.Decimal) error {
	if err := kernel.ValidatePositiveAmount("finalAmount", amount); err != nil {
		return err
	}
	n.finalAmount = amount
	return nil
}

func (n *Negotiation) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	n.status = status
	return nil
}
