package commands

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand registers a new Pending purchase request.
//
// Example:
//
//	parties, _ := kernel.NewParties(7, "Annual Summit", 42, "Acme Catering", "jdoe")
//	cmd, err := NewCreateRequestCommand(kernel.NewUUID(), parties, time.Now(), decimal.NewFromInt(10000))
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateRequestCommand struct {
	requestID       kernel.UUID
	parties         kernel.Parties
	requestDate     time.Time
	allocatedAmount decimal.Decimal

	guard guard.ConstructorGuard
}

func NewCreateRequestCommand(
	requestID kernel.UUID,
	parties kernel.Parties,
	requestDate time.Time,
	allocatedAmount decimal.Decimal,
) (CreateRequestCommand, error) {
	if err := errors.Join(
		requestID.Validate(),
		parties.Validate(),
		requiredDate("requestDate", requestDate),
		kernel.ValidatePositiveAmount("allocatedAmount", allocatedAmount),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return CreateRequestCommand{
		requestID:       requestID,
		parties:         parties,
		requestDate:     requestDate,
		allocatedAmount: allocatedAmount,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c CreateRequestCommand) Parties() kernel.Parties {
	return c.parties
}

func (c CreateRequestCommand) RequestDate() time.Time {
	return c.requestDate
}

func (c CreateRequestCommand) AllocatedAmount() decimal.Decimal {
	return c.allocatedAmount
}

func requiredDate(paramName string, date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}
