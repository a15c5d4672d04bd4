package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"gorm.io/gorm"
)

const ordersTable = "purchase_orders"

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders matching a filter, newest order date first.
// A filter that matches nothing returns an empty list.
//
// A vendor listing built with NewListOrdersByVendorQuery fails with
// ValueIsInvalidError on vendorId when the vendor has no orders at all;
// clients rely on that to detect unknown vendors.
type ListOrdersQuery struct {
	filter     Filter
	status     *order.Status
	vendorOnly bool

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter Filter, status string) (ListOrdersQuery, error) {
	if err := filter.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	var parsed *order.Status
	if strings.TrimSpace(status) != "" {
		s, err := order.ParseStatus(status)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		parsed = &s
	}

	return ListOrdersQuery{filter: filter, status: parsed, guard: guard.NewConstructorGuard()}, nil
}

// NewListOrdersByVendorQuery lists the orders of one vendor. The other
// filter fields and status still narrow the result.
func NewListOrdersByVendorQuery(vendorID int64, filter Filter, status string) (ListOrdersQuery, error) {
	if vendorID <= 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("vendorId",
			fmt.Errorf("%d is not greater than 0", vendorID))
	}

	filter.VendorID = vendorID
	q, err := NewListOrdersQuery(filter, status)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	q.vendorOnly = true
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() Filter {
	return q.filter
}

func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListOrdersQuery) VendorOnly() bool {
	return q.vendorOnly
}

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := query.Filter().apply(h.db.WithContext(ctx).Table(ordersTable), "order_date")
	if s := query.Status(); s != nil {
		db = db.Where("status = ?", int(*s))
	}

	var rows []orderRow
	if err := db.Order("order_date DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	if query.VendorOnly() && len(rows) == 0 {
		if err := h.requireVendorOrders(ctx, query.Filter().VendorID); err != nil {
			return nil, err
		}
	}
	return mapRows(rows, orderRow.toResponse)
}

func (h ListOrdersQueryHandler) requireVendorOrders(ctx context.Context, vendorID int64) error {
	var count int64
	err := h.db.WithContext(ctx).Table(ordersTable).Where("vendor_id = ?", vendorID).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewValueIsInvalidErrorWithCause("vendorId",
			fmt.Errorf("no purchase orders found for vendor %d", vendorID))
	}
	return nil
}
