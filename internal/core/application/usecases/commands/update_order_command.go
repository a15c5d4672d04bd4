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

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand revises the date, amounts and status of an order. A zero
// date keeps the stored date, nil amounts keep the stored ones and a nil
// status keeps the current one.
type UpdateOrderCommand struct {
	orderID         kernel.UUID
	orderDate       time.Time
	amountPrimary   *decimal.Decimal
	amountSecondary *decimal.Decimal
	status          *order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(
	orderID kernel.UUID,
	orderDate time.Time,
	amountPrimary *decimal.Decimal,
	amountSecondary *decimal.Decimal,
	status *order.Status,
) (UpdateOrderCommand, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
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
		return UpdateOrderCommand{}, err
	}

	return UpdateOrderCommand{
		orderID:         orderID,
		orderDate:       orderDate,
		amountPrimary:   amountPrimary,
		amountSecondary: amountSecondary,
		status:          status,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

func (c UpdateOrderCommand) AmountPrimary() *decimal.Decimal {
	return c.amountPrimary
}

func (c UpdateOrderCommand) AmountSecondary() *decimal.Decimal {
	return c.amountSecondary
}

func (c UpdateOrderCommand) Status() *order.Status {
	return c.status
}
