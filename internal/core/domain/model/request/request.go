package request

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest constructor")

// Request is the aggregate root of the first procurement stage.
//
// Request follows these invariants:
//   - Must have a valid identifier and party snapshot
//   - Request date is required
//   - Allocated amount must be positive
//
// Children (negotiation, order) reference a request by id; the request itself
// holds no link to them.
type Request struct {
	id              kernel.UUID
	parties         kernel.Parties
	requestDate     time.Time
	allocatedAmount decimal.Decimal
	status          Status

	isConstructed bool
}

// NewRequest creates a Pending request.
func NewRequest(id kernel.UUID, parties kernel.Parties, requestDate time.Time, allocatedAmount decimal.Decimal) (*Request, error) {
	r := &Request{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setParties(parties),
		r.setRequestDate(requestDate),
		r.setAllocatedAmount(allocatedAmount),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRequest rebuilds a request read from storage.
func RestoreRequest(
	id kernel.UUID,
	parties kernel.Parties,
	requestDate time.Time,
	allocatedAmount decimal.Decimal,
	status Status,
) (*Request, error) {
	r := &Request{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setParties(parties),
		r.setRequestDate(requestDate),
		r.setAllocatedAmount(allocatedAmount),
		r.setStatus(status),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) IsEqual(other *Request) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Request) ID() kernel.UUID {
	return r.id
}

func (r *Request) Parties() kernel.Parties {
	return r.parties
}

func (r *Request) RequestDate() time.Time {
	return r.requestDate
}

func (r *Request) AllocatedAmount() decimal.Decimal {
	return r.allocatedAmount
}

func (r *Request) Status() Status {
	return r.status
}

// Revise replaces the editable fields. A nil status keeps the current one.
// Either all fields are applied or none.
func (r *Request) Revise(parties kernel.Parties, requestDate time.Time, allocatedAmount decimal.Decimal, status *Status) error {
	next := *r
	setters := []error{
		next.setParties(parties),
		next.setRequestDate(requestDate),
		next.setAllocatedAmount(allocatedAmount),
	}
	if status != nil {
		setters = append(setters, next.setStatus(*status))
	}
	if err := errors.Join(setters...); err != nil {
		return err
	}

	*r = next
	return nil
}

// Approve marks the request Approved.
func (r *Request) Approve() {
	r.status = Approved
}

// Reject marks the request Rejected.
func (r *Request) Reject() {
	r.status = Rejected
}

// ValidatePromote reports whether a negotiation may be opened for the request.
func (r *Request) ValidatePromote() error {
	return r.status.ValidatePromote()
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setParties(parties kernel.Parties) error {
	if err := parties.Validate(); err != nil {
		return err
	}
	r.parties = parties
	return nil
}

func (r *Request) setRequestDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("requestDate")
	}
	r.requestDate = date
	return nil
}

func (r *Request) setAllocatedAmount(amount decimal.Decimal) error {
	if err := kernel.ValidatePositiveAmount("allocatedAmount", amount); err != nil {
		return err
	}
	r.allocatedAmount = amount
	return nil
}

func (r *Request) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}
