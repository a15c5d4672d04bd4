package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/purchase-orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var payload OrderPayload
	if err := bindAndValidate(c, &payload); err != nil {
		return err
	}

	parties, err := payload.toDomain()
	if err != nil {
		return err
	}
	status, err := optionalOrderStatus(payload.Status)
	if err != nil {
		return err
	}
	requestID, err := optionalUUID("requestId", payload.RequestID)
	if err != nil {
		return err
	}
	negotiationID, err := optionalUUID("negotiationId", payload.NegotiationID)
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, parties, payload.OrderDate.Time,
		payload.AmountPrimary, payload.AmountSecondary, status, requestID, negotiationID)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondOrder(c, http.StatusCreated, id)
}

// UpdateOrder handles PUT /api/purchase-orders/:id. Parties and links in the
// payload are ignored.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var payload OrderPayload
	if err = bindAndValidate(c, &payload); err != nil {
		return err
	}

	status, err := optionalOrderStatus(payload.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(id, payload.OrderDate.Time,
		payload.AmountPrimary, payload.AmountSecondary, status)
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondOrder(c, http.StatusOK, id)
}

// CompleteOrder handles POST /api/purchase-orders/:id/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	return s.changeOrder(c, commands.NewCompleteOrderCommand, http.StatusOK)
}

// RejectOrder handles POST /api/purchase-orders/:id/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	return s.changeOrder(c, commands.NewRejectOrderCommand, http.StatusOK)
}

// DeleteOrder handles DELETE /api/purchase-orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	return s.changeOrder(c, commands.NewDeleteOrderCommand, http.StatusNoContent)
}

func (s *Server) changeOrder(
	c echo.Context,
	newCommand func(kernel.UUID) (commands.ChangeOrderCommand, error),
	code int,
) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := newCommand(id)
	if err != nil {
		return err
	}
	if err = s.handlers.ChangeOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	if code == http.StatusNoContent {
		return c.NoContent(code)
	}
	return s.respondOrder(c, code, id)
}

// GetOrder handles GET /api/purchase-orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, id)
}

// ListOrders handles GET /api/purchase-orders.
func (s *Server) ListOrders(c echo.Context) error {
	found, err := s.listOrders(c, nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapViews(found, orderView))
}

// ListOrdersByVendor handles GET /api/purchase-orders/vendor/:vendorId. A
// vendor without any orders answers 400; a vendor whose orders are all
// filtered out answers an empty list.
func (s *Server) ListOrdersByVendor(c echo.Context) error {
	vendorID, err := vendorParam(c)
	if err != nil {
		return err
	}

	found, err := s.listOrders(c, &vendorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapViews(found, orderView))
}

// VendorTotal handles GET /api/purchase-orders/vendor/:vendorId/total.
func (s *Server) VendorTotal(c echo.Context) error {
	vendorID, err := vendorParam(c)
	if err != nil {
		return err
	}

	query, err := queries.NewTotalOrderAmountByVendorQuery(vendorID)
	if err != nil {
		return err
	}

	total, err := s.handlers.VendorTotal.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, VendorTotalView{
		VendorID: vendorID,
		Total:    total,
		Currency: string(kernel.Primary),
	})
}

// ExportOrders handles GET /api/purchase-orders/export. It accepts the same
// filters as ListOrders and answers with a spreadsheet attachment.
func (s *Server) ExportOrders(c echo.Context) error {
	if s.exporter == nil {
		return echo.NewHTTPError(http.StatusNotImplemented, "export is not configured")
	}

	found, err := s.listOrders(c, nil)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = s.exporter.Export(c.Request().Context(), &buf, found); err != nil {
		return err
	}

	name := fmt.Sprintf("purchase-orders-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, s.exporter.ContentType(), buf.Bytes())
}

// listOrders runs the vendor listing when vendorID is given, the plain
// filtered listing otherwise.
func (s *Server) listOrders(c echo.Context, vendorID *int64) ([]queries.OrderResponse, error) {
	filter, err := filterFromQuery(c)
	if err != nil {
		return nil, err
	}

	var query queries.ListOrdersQuery
	if vendorID != nil {
		query, err = queries.NewListOrdersByVendorQuery(*vendorID, filter, c.QueryParam("status"))
	} else {
		query, err = queries.NewListOrdersQuery(filter, c.QueryParam("status"))
	}
	if err != nil {
		return nil, err
	}

	return s.handlers.ListOrders.Handle(c.Request().Context(), query)
}

func (s *Server) respondOrder(c echo.Context, code int, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	found, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(code, orderView(found))
}

func optionalOrderStatus(raw string) (*order.Status, error) {
	if raw == "" {
		return nil, nil
	}
	status, err := order.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func vendorParam(c echo.Context) (int64, error) {
	var vendorID int64
	err := echo.PathParamsBinder(c).MustInt64("vendorId", &vendorID).BindError()
	return vendorID, err
}
