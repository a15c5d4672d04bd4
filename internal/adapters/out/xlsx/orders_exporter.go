// Package xlsx renders purchase orders as an Excel workbook.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	SheetName   = "Purchase Orders"
	contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout  = "2006-01-02"
)

// Header is the first row of the sheet.
var Header = []any{
	"Order ID",
	"Order Date",
	"Event ID",
	"Event Name",
	"Vendor ID",
	"Vendor Name",
	"Submitter ID",
	"Amount (" + string(kernel.Primary) + ")",
	"Amount (" + string(kernel.Secondary) + ")",
	"Status",
	"Request ID",
	"Negotiation ID",
}

// OrdersExporter writes one sheet with a header row and one row per order.
type OrdersExporter struct {
	logger *zap.Logger
}

func NewOrdersExporter(logger *zap.Logger) *OrdersExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrdersExporter{logger: logger}
}

func (e *OrdersExporter) ContentType() string {
	return contentType
}

// Export writes the workbook to w. Amounts are stored as numbers with four
// decimals shown.
func (e *OrdersExporter) Export(ctx context.Context, w io.Writer, orders []queries.OrderResponse) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	amountFormat := "#,##0.0000"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFormat})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	for i, o := range orders {
		if err := ctx.Err(); err != nil {
			return err
		}

		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}

		values := []any{
			o.ID.String(),
			o.OrderDate.UTC().Format(dateLayout),
			o.Parties.EventID,
			o.Parties.EventName,
			o.Parties.VendorID,
			o.Parties.VendorName,
			o.Parties.SubmitterID,
			o.AmountPrimary.InexactFloat64(),
			o.AmountSecondary.InexactFloat64(),
			o.Status.String(),
			optionalID(o.RequestID),
			optionalID(o.NegotiationID),
		}
		if err = f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write order %s: %w", o.ID, err)
		}

		first, _ := excelize.CoordinatesToCellName(8, row)
		last, _ := excelize.CoordinatesToCellName(9, row)
		if err = f.SetCellStyle(SheetName, first, last, amountStyle); err != nil {
			return fmt.Errorf("failed to style order %s: %w", o.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Debug("Orders exported", zap.Int("rows", len(orders)))
	return nil
}

func optionalID(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
