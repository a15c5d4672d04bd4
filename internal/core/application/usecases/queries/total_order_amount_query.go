package queries

import (
	"context"
	"errors"
	"fmt"

	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrTotalOrderAmountByVendorQueryIsNotConstructed = errors.New(
	"TotalOrderAmountByVendorQuery must be created via NewTotalOrderAmountByVendorQuery constructor",
)

// TotalOrderAmountByVendorQuery sums the primary amounts of every order of a
// vendor, whatever their status.
type TotalOrderAmountByVendorQuery struct {
	vendorID int64

	guard guard.ConstructorGuard
}

func NewTotalOrderAmountByVendorQuery(vendorID int64) (TotalOrderAmountByVendorQuery, error) {
	if vendorID <= 0 {
		return TotalOrderAmountByVendorQuery{}, errs.NewValueIsInvalidErrorWithCause("vendorId",
			fmt.Errorf("%d is not greater than 0", vendorID))
	}
	return TotalOrderAmountByVendorQuery{vendorID: vendorID, guard: guard.NewConstructorGuard()}, nil
}

func (q TotalOrderAmountByVendorQuery) Validate() error {
	return q.guard.Validate(ErrTotalOrderAmountByVendorQueryIsNotConstructed)
}

func (q TotalOrderAmountByVendorQuery) VendorID() int64 {
	return q.vendorID
}

type TotalOrderAmountByVendorQueryHandler struct {
	db *gorm.DB
}

func NewTotalOrderAmountByVendorQueryHandler(db *gorm.DB) TotalOrderAmountByVendorQueryHandler {
	return TotalOrderAmountByVendorQueryHandler{db: db}
}

// Handle returns zero for a vendor without orders. The sum is taken in
// decimal rather than in SQL so that no driver rounds the amounts.
func (h TotalOrderAmountByVendorQueryHandler) Handle(
	ctx context.Context,
	query TotalOrderAmountByVendorQuery,
) (decimal.Decimal, error) {
	if err := query.Validate(); err != nil {
		return decimal.Zero, err
	}

	var amounts []decimal.Decimal
	if err := h.db.WithContext(ctx).
		Table(ordersTable).
		Where("vendor_id = ?", query.VendorID()).
		Pluck("amount_primary", &amounts).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}
