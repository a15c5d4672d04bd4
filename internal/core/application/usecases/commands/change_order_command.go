package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrChangeOrderCommandIsNotConstructed = errors.New(
	"ChangeOrderCommand must be created via NewCompleteOrderCommand, NewRejectOrderCommand or NewDeleteOrderCommand constructor",
)

// OrderAction is what a ChangeOrderCommand does to the order.
type OrderAction int

const (
	OrderComplete OrderAction = iota + 1
	OrderReject
	OrderDelete
)

func (a OrderAction) String() string {
	switch a {
	case OrderComplete:
		return "complete_order"
	case OrderReject:
		return "reject_order"
	case OrderDelete:
		return "delete_order"
	default:
		return "unknown"
	}
}

// ChangeOrderCommand completes, rejects or deletes an order by id.
type ChangeOrderCommand struct {
	orderID kernel.UUID
	action  OrderAction

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(orderID kernel.UUID) (ChangeOrderCommand, error) {
	return newChangeOrderCommand(orderID, OrderComplete)
}

func NewRejectOrderCommand(orderID kernel.UUID) (ChangeOrderCommand, error) {
	return newChangeOrderCommand(orderID, OrderReject)
}

func NewDeleteOrderCommand(orderID kernel.UUID) (ChangeOrderCommand, error) {
	return newChangeOrderCommand(orderID, OrderDelete)
}

func newChangeOrderCommand(orderID kernel.UUID, action OrderAction) (ChangeOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ChangeOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}

	return ChangeOrderCommand{
		orderID: orderID,
		action:  action,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderCommandIsNotConstructed)
}

func (c ChangeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderCommand) Action() OrderAction {
	return c.action
}
