package commands

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/request"
	"procurement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateRequestCommandIsNotConstructed = errors.New(
	"UpdateRequestCommand must be created via NewUpdateRequestCommand constructor",
)

// UpdateRequestCommand replaces the editable fields of a request. A nil status
// keeps the stored one.
type UpdateRequestCommand struct {
	requestID       kernel.UUID
	parties         kernel.Parties
	requestDate     time.Time
	allocatedAmount decimal.Decimal
	status          *request.Status

	guard guard.ConstructorGuard
}

func NewUpdateRequestCommand(
	requestID kernel.UUID,
	parties kernel.Parties,
	requestDate time.Time,
	allocatedAmount decimal.Decimal,
	status *request.Status,
) (UpdateRequestCommand, error) {
	errList := []error{
		requestID.Validate(),
		parties.Validate(),
		requiredDate("requestDate", requestDate),
		kernel.ValidatePositiveAmount("allocatedAmount", allocatedAmount),
	}
	if status != nil {
		errList = append(errList, status.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateRequestCommand{}, err
	}

	return UpdateRequestCommand{
		requestID:       requestID,
		parties:         parties,
		requestDate:     requestDate,
		allocatedAmount: allocatedAmount,
		status:          status,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateRequestCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRequestCommandIsNotConstructed)
}

func (c UpdateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c UpdateRequestCommand) Parties() kernel.Parties {
	return c.parties
}

func (c UpdateRequestCommand) RequestDate() time.Time {
	return c.requestDate
}

func (c UpdateRequestCommand) AllocatedAmount() decimal.Decimal {
	return c.allocatedAmount
}

func (c UpdateRequestCommand) Status() *request.Status {
	return c.status
}
