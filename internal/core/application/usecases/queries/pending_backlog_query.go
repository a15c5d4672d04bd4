package queries

import (
	"context"

	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/model/request"

	"gorm.io/gorm"
)

// PendingBacklog counts the records still waiting in each stage.
type PendingBacklog struct {
	Requests     int64
	Negotiations int64
	Orders       int64
}

// PendingBacklogQueryHandler takes no query value; the backlog has no
// parameters.
type PendingBacklogQueryHandler struct {
	db *gorm.DB
}

func NewPendingBacklogQueryHandler(db *gorm.DB) PendingBacklogQueryHandler {
	return PendingBacklogQueryHandler{db: db}
}

func (h PendingBacklogQueryHandler) Handle(ctx context.Context) (PendingBacklog, error) {
	var backlog PendingBacklog
	db := h.db.WithContext(ctx)

	if err := db.Table(requestsTable).Where("status = ?", int(request.Pending)).Count(&backlog.Requests).Error; err != nil {
		return PendingBacklog{}, err
	}
	if err := db.Table(negotiationsTable).Where("status = ?", int(negotiation.Pending)).Count(&backlog.Negotiations).Error; err != nil {
		return PendingBacklog{}, err
	}
	if err := db.Table(ordersTable).Where("status = ?", int(order.Pending)).Count(&backlog.Orders).Error; err != nil {
		return PendingBacklog{}, err
	}

	return backlog, nil
}
