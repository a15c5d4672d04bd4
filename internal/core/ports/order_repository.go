package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OrderRepository persists purchase order aggregates.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by id and locks it for the rest of the transaction.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	Delete(ctx context.Context, id kernel.UUID) error

	// FindByNegotiation returns the order owned by negotiationID, or nil when there is none.
	FindByNegotiation(ctx context.Context, negotiationID kernel.UUID) (*order.Order, error)
}
