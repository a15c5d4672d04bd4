package queries

import (
	"context"
	"errors"
	"strings"

	"procurement/internal/core/domain/model/request"
	"procurement/internal/pkg/guard"

	"gorm.io/gorm"
)

const requestsTable = "purchase_requests"

var ErrListRequestsQueryIsNotConstructed = errors.New(
	"ListRequestsQuery must be created via NewListRequestsQuery constructor",
)

// ListRequestsQuery lists requests matching a filter, newest request date
// first. An empty status lists every status.
type ListRequestsQuery struct {
	filter Filter
	status *request.Status

	guard guard.ConstructorGuard
}

func NewListRequestsQuery(filter Filter, status string) (ListRequestsQuery, error) {
	if err := filter.Validate(); err != nil {
		return ListRequestsQuery{}, err
	}

	var parsed *request.Status
	if strings.TrimSpace(status) != "" {
		s, err := request.ParseStatus(status)
		if err != nil {
			return ListRequestsQuery{}, err
		}
		parsed = &s
	}

	return ListRequestsQuery{filter: filter, status: parsed, guard: guard.NewConstructorGuard()}, nil
}

func (q ListRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListRequestsQueryIsNotConstructed)
}

func (q ListRequestsQuery) Filter() Filter {
	return q.filter
}

func (q ListRequestsQuery) Status() *request.Status {
	return q.status
}

type ListRequestsQueryHandler struct {
	db *gorm.DB
}

func NewListRequestsQueryHandler(db *gorm.DB) ListRequestsQueryHandler {
	return ListRequestsQueryHandler{db: db}
}

func (h ListRequestsQueryHandler) Handle(ctx context.Context, query ListRequestsQuery) ([]RequestResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := query.Filter().apply(h.db.WithContext(ctx).Table(requestsTable), "request_date")
	if s := query.Status(); s != nil {
		db = db.Where("status = ?", int(*s))
	}

	var rows []requestRow
	if err := db.Order("request_date DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapRows(rows, requestRow.toResponse)
}
