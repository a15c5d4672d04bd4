package queries

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetRequestQueryIsNotConstructed = errors.New(
	"GetRequestQuery must be created via NewGetRequestQuery constructor",
)

type GetRequestQuery struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetRequestQuery(requestID kernel.UUID) (GetRequestQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetRequestQuery{}, errs.NewValueIsRequiredErrorWithCause("requestId", err)
	}
	return GetRequestQuery{requestID: requestID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

func (q GetRequestQuery) RequestID() kernel.UUID {
	return q.requestID
}

type GetRequestQueryHandler struct {
	db *gorm.DB
}

func NewGetRequestQueryHandler(db *gorm.DB) GetRequestQueryHandler {
	return GetRequestQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when no request has the id.
func (h GetRequestQueryHandler) Handle(ctx context.Context, query GetRequestQuery) (RequestResponse, error) {
	if err := query.Validate(); err != nil {
		return RequestResponse{}, err
	}

	var rows []requestRow
	if err := h.db.WithContext(ctx).
		Table(requestsTable).
		Where("id = ?", query.RequestID().Bytes()).
		Limit(1).
		Find(&rows).Error; err != nil {
		return RequestResponse{}, err
	}

	if len(rows) == 0 {
		return RequestResponse{}, errs.NewObjectNotFoundError("purchase request", query.RequestID().String())
	}
	return rows[0].toResponse()
}
