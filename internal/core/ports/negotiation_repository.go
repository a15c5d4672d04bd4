package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/negotiation"
)

// NegotiationRepository persists negotiation aggregates.
type NegotiationRepository interface {
	Add(ctx context.Context, aggregate *negotiation.Negotiation) error

	Update(ctx context.Context, aggregate *negotiation.Negotiation) error

	// Get loads a negotiation by id and locks it for the rest of the transaction.
	Get(ctx context.Context, id kernel.UUID) (*negotiation.Negotiation, error)

	Delete(ctx context.Context, id kernel.UUID) error

	// FindByRequest returns the negotiation owned by requestID, or nil when there is none.
	FindByRequest(ctx context.Context, requestID kernel.UUID) (*negotiation.Negotiation, error)
}
