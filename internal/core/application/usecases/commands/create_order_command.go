package commands

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places an order directly. At least one amount is
// required; a missing one is derived through the exchange rate. Links are
// optional, but when given they must name existing records.
type CreateOrderCommand struct {
	orderID         kernel.UUID
	parties         kernel.Parties
	orderDate       time.Time
	amountPrimary   *decimal.Decimal
	amountSecondary *decimal.Decimal
	status          *order.Status
	requestID       *kernel.UUID
	negotiationID   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	parties kernel.Parties,
	orderDate time.Time,
	amountPrimary *decimal.Decimal,
	amountSecondary *decimal.Decimal,
	status *order.Status,
	requestID *kernel.UUID,
	negotiationID *kernel.UUID,
) (CreateOrderCommand, error) {
	errList := []error{
		parties.Validate(),
		requiredDate("orderDate", orderDate),
	}
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	if amountPrimary == nil && amountSecondary == nil {
		errList = append(errList, errs.NewValueIsRequiredError("amount"))
	}
	if amountPrimary != nil {
		errList = append(errList, kernel.ValidatePositiveAmount("amountPrimary", *amountPrimary))
	}
	if amountSecondary != nil {
		errList = append(errList, kernel.ValidatePositiveAmount("amountSecondary", *amountSecondary))
	}
	if status != nil {
		errList = append(errList, status.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:         orderID,
		parties:         parties,
		orderDate:       orderDate,
		amountPrimary:   amountPrimary,
		amountSecondary: amountSecondary,
		status:          status,
		requestID:       requestID,
		negotiationID:   negotiationID,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Parties() kernel.Parties {
	return c.parties
}

func (c CreateOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

func (c CreateOrderCommand) AmountPrimary() *decimal.Decimal {
	return c.amountPrimary
}

func (c CreateOrderCommand) AmountSecondary() *decimal.Decimal {
	return c.amountSecondary
}

func (c CreateOrderCommand) Status() *order.Status {
	return c.status
}

func (c CreateOrderCommand) RequestID() *kernel.UUID {
	return c.requestID
}

func (c CreateOrderCommand) NegotiationID() *kernel.UUID {
	return c.negotiationID
}
