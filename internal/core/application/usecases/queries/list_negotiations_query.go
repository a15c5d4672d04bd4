package queries

import (
	"context"
	"errors"
	"strings"

	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/pkg/guard"

	"gorm.io/gorm"
)

const negotiationsTable = "negotiations"

var ErrListNegotiationsQueryIsNotConstructed = errors.New(
	"ListNegotiationsQuery must be created via NewListNegotiationsQuery constructor",
)

// ListNegotiationsQuery lists negotiations matching a filter, newest first.
// With savingsOnly set, only negotiations that closed below the initial quote
// are returned.
type ListNegotiationsQuery struct {
	filter      Filter
	status      *negotiation.Status
	savingsOnly bool

	guard guard.ConstructorGuard
}

func NewListNegotiationsQuery(filter Filter, status string, savingsOnly bool) (ListNegotiationsQuery, error) {
	if err := filter.Validate(); err != nil {
		return ListNegotiationsQuery{}, err
	}

	var parsed *negotiation.Status
	if strings.TrimSpace(status) != "" {
		s, err := negotiation.ParseStatus(status)
		if err != nil {
			return ListNegotiationsQuery{}, err
		}
		parsed = &s
	}

	return ListNegotiationsQuery{
		filter:      filter,
		status:      parsed,
		savingsOnly: savingsOnly,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q ListNegotiationsQuery) Validate() error {
	return q.guard.Validate(ErrListNegotiationsQueryIsNotConstructed)
}

func (q ListNegotiationsQuery) Filter() Filter {
	return q.filter
}

func (q ListNegotiationsQuery) Status() *negotiation.Status {
	return q.status
}

func (q ListNegotiationsQuery) SavingsOnly() bool {
	return q.savingsOnly
}

type ListNegotiationsQueryHandler struct {
	db *gorm.DB
}

func NewListNegotiationsQueryHandler(db *gorm.DB) ListNegotiationsQueryHandler {
	return ListNegotiationsQueryHandler{db: db}
}

func (h ListNegotiationsQueryHandler) Handle(ctx context.Context, query ListNegotiationsQuery) ([]NegotiationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := query.Filter().apply(h.db.WithContext(ctx).Table(negotiationsTable), "negotiation_date")
	if s := query.Status(); s != nil {
		db = db.Where("status = ?", int(*s))
	}
	if query.SavingsOnly() {
		db = db.Where("final_amount < initial_quote_amount")
	}

	var rows []negotiationRow
	if err := db.Order("negotiation_date DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapRows(rows, negotiationRow.toResponse)
}
