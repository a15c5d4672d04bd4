// Package ports defines the persistence contracts of the procurement core.
// Adapters implement them; command handlers reach them through a UnitOfWork.
package ports

import (
	"context"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/request"
)

// RequestRepository persists purchase request aggregates.
type RequestRepository interface {
	// Add persists a new request.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update persists changes to an existing request.
	Update(ctx context.Context, aggregate *request.Request) error

	// Get loads a request by id and locks it for the rest of the transaction.
	// Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// Delete removes a request. Returns errs.ObjectNotFoundError when it does not exist.
	Delete(ctx context.Context, id kernel.UUID) error

	// ExistsByEvent reports whether a request for eventID is already stored.
	ExistsByEvent(ctx context.Context, eventID int64) (bool, error)
}
