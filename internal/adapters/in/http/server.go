// Package http is the REST adapter. It binds and validates payloads, turns
// them into commands, and answers with the re-read projection of the record.
package http

import (
	"context"
	"io"
	"net/http"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// OrdersExporter writes orders as a spreadsheet.
type OrdersExporter interface {
	ContentType() string
	Export(ctx context.Context, w io.Writer, orders []queries.OrderResponse) error
}

// Handlers is every use case the REST surface exposes.
type Handlers struct {
	CreateRequest commands.CreateRequestCommandHandler
	UpdateRequest commands.UpdateRequestCommandHandler
	DecideRequest commands.DecideRequestCommandHandler
	DeleteRequest commands.DeleteRequestCommandHandler

	CreateNegotiation commands.CreateNegotiationCommandHandler
	UpdateNegotiation commands.UpdateNegotiationCommandHandler
	DeleteNegotiation commands.DeleteNegotiationCommandHandler

	CreateOrder commands.CreateOrderCommandHandler
	UpdateOrder commands.UpdateOrderCommandHandler
	ChangeOrder commands.ChangeOrderCommandHandler

	GetRequest       queries.GetRequestQueryHandler
	ListRequests     queries.ListRequestsQueryHandler
	GetNegotiation   queries.GetNegotiationQueryHandler
	ListNegotiations queries.ListNegotiationsQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	ListOrders       queries.ListOrdersQueryHandler
	VendorTotal      queries.TotalOrderAmountByVendorQueryHandler
}

// Server serves the procurement REST API.
type Server struct {
	handlers Handlers
	exporter OrdersExporter
	logger   *zap.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

// NewServer wires the REST handlers. gatherer backs /metrics; with a nil
// gatherer the route is not registered.
func NewServer(
	handlers Handlers,
	exporter OrdersExporter,
	logger *zap.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		handlers: handlers,
		exporter: exporter,
		logger:   logger,
		metrics:  m,
		gatherer: gatherer,
	}
}

// Echo builds the router with middleware, validation and error rendering.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newPayloadValidator()
	e.HTTPErrorHandler = errorHandler(s.logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger, s.metrics))

	s.Register(e)
	return e
}

// Register adds every route to e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if s.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api")

	requests := api.Group("/purchase-requests")
	requests.GET("", s.ListRequests)
	requests.POST("", s.CreateRequest)
	requests.GET("/:id", s.GetRequest)
	requests.PUT("/:id", s.UpdateRequest)
	requests.DELETE("/:id", s.DeleteRequest)
	requests.POST("/:id/approve", s.ApproveRequest)
	requests.POST("/:id/reject", s.RejectRequest)

	negotiations := api.Group("/negotiations")
	negotiations.GET("", s.ListNegotiations)
	negotiations.POST("", s.CreateNegotiation)
	negotiations.POST("/from-request/:requestId", s.CreateNegotiationFromRequest)
	negotiations.GET("/:id", s.GetNegotiation)
	negotiations.PUT("/:id", s.UpdateNegotiation)
	negotiations.DELETE("/:id", s.DeleteNegotiation)

	orders := api.Group("/purchase-orders")
	orders.GET("", s.ListOrders)
	orders.POST("", s.CreateOrder)
	orders.GET("/export", s.ExportOrders)
	orders.GET("/vendor/:vendorId", s.ListOrdersByVendor)
	orders.GET("/vendor/:vendorId/total", s.VendorTotal)
	orders.GET("/:id", s.GetOrder)
	orders.PUT("/:id", s.UpdateOrder)
	orders.DELETE("/:id", s.DeleteOrder)
	orders.POST("/:id/complete", s.CompleteOrder)
	orders.POST("/:id/reject", s.RejectOrder)
}

func bindAndValidate(c echo.Context, payload any) error {
	if err := c.Bind(payload); err != nil {
		return err
	}
	return c.Validate(payload)
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func optionalUUID(name, raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}

// filterFromQuery reads vendorId, eventId, submitterId, year, from and to.
func filterFromQuery(c echo.Context) (queries.Filter, error) {
	var (
		f        queries.Filter
		from, to string
	)
	err := echo.QueryParamsBinder(c).
		Int64("vendorId", &f.VendorID).
		Int64("eventId", &f.EventID).
		String("submitterId", &f.SubmitterID).
		Int("year", &f.Year).
		String("from", &from).
		String("to", &to).
		BindError()
	if err != nil {
		return queries.Filter{}, err
	}

	if f.From, err = queryDate("from", from); err != nil {
		return queries.Filter{}, err
	}
	if f.To, err = queryDate("to", to); err != nil {
		return queries.Filter{}, err
	}
	return f, nil
}
