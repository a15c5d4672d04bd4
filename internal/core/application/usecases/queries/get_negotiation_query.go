package queries

import (
	"context"
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetNegotiationQueryIsNotConstructed = errors.New(
	"GetNegotiationQuery must be created via NewGetNegotiationQuery constructor",
)

type GetNegotiationQuery struct {
	negotiationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetNegotiationQuery(negotiationID kernel.UUID) (GetNegotiationQuery, error) {
	if err := negotiationID.Validate(); err != nil {
		return GetNegotiationQuery{}, errs.NewValueIsRequiredErrorWithCause("negotiationId", err)
	}
	return GetNegotiationQuery{negotiationID: negotiationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetNegotiationQuery) Validate() error {
	return q.guard.Validate(ErrGetNegotiationQueryIsNotConstructed)
}

func (q GetNegotiationQuery) NegotiationID() kernel.UUID {
	return q.negotiationID
}

type GetNegotiationQueryHandler struct {
	db *gorm.DB
}

func NewGetNegotiationQueryHandler(db *gorm.DB) GetNegotiationQueryHandler {
	return GetNegotiationQueryHandler{db: db}
}

func (h GetNegotiationQueryHandler) Handle(ctx context.Context, query GetNegotiationQuery) (NegotiationResponse, error) {
	if err := query.Validate(); err != nil {
		return NegotiationResponse{}, err
	}

	var rows []negotiationRow
	if err := h.db.WithContext(ctx).
		Table(negotiationsTable).
		Where("id = ?", query.NegotiationID().Bytes()).
		Limit(1).
		Find(&rows).Error; err != nil {
		return NegotiationResponse{}, err
	}

	if len(rows) == 0 {
		return NegotiationResponse{}, errs.NewObjectNotFoundError("negotiation", query.NegotiationID().String())
	}
	return rows[0].toResponse()
}
