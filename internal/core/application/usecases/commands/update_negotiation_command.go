package commands

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateNegotiationCommandIsNotConstructed = errors.New(
	"UpdateNegotiationCommand must be created via NewUpdateNegotiationCommand constructor",
)

// UpdateNegotiationCommand writes the four editable negotiation fields.
// orderID names the order that is created if the update completes the
// negotiation and no order exists yet.
type UpdateNegotiationCommand struct {
	negotiationID   kernel.UUID
	finalAmount     decimal.Decimal
	negotiationDate time.Time
	status          negotiation.Status
	notes           string
	orderID         kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdateNegotiationCommand(
	negotiationID kernel.UUID,
	finalAmount decimal.Decimal,
	negotiationDate time.Time,
	status negotiation.Status,
	notes string,
	orderID kernel.UUID,
) (UpdateNegotiationCommand, error) {
	var errList []error
	if err := negotiationID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("negotiationId", err))
	}
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	errList = append(errList,
		kernel.ValidatePositiveAmount("finalAmount", finalAmount),
		requiredDate("negotiationDate", negotiationDate),
		status.Validate(),
	)
	if err := errors.Join(errList...); err != nil {
		return UpdateNegotiationCommand{}, err
	}

	return UpdateNegotiationCommand{
		negotiationID:   negotiationID,
		finalAmount:     finalAmount,
		negotiationDate: negotiationDate,
		status:          status,
		notes:           notes,
		orderID:         orderID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateNegotiationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateNegotiationCommandIsNotConstructed)
}

func (c UpdateNegotiationCommand) NegotiationID() kernel.UUID {
	return c.negotiationID
}

func (c UpdateNegotiationCommand) FinalAmount() decimal.Decimal {
	return c.finalAmount
}

func (c UpdateNegotiationCommand) NegotiationDate() time.Time {
	return c.negotiationDate
}

func (c UpdateNegotiationCommand) Status() negotiation.Status {
	return c.status
}

func (c UpdateNegotiationCommand) Notes() string {
	return c.notes
}

func (c UpdateNegotiationCommand) OrderID() kernel.UUID {
	return c.orderID
}
