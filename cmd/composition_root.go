package cmd

import (
	"procurement/internal/adapters/in/http"
	"procurement/internal/adapters/out/storage"
	"procurement/internal/adapters/out/xlsx"
	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/services"
	"procurement/internal/jobs"
	"procurement/internal/pkg/keylock"
	"procurement/internal/pkg/logging"
	"procurement/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *storage.GormUnitOfWorkFactory
	deps       commands.Deps
	logger     *zap.Logger
	registry   *prometheus.Registry
}

// NewCompositionRoot wires shared collaborators. Every handler created from
// one root shares the lock table, so cascades started through different
// handlers serialise on the same records.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (CompositionRoot, error) {
	converter, err := config.Converter()
	if err != nil {
		return CompositionRoot{}, err
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: storage.NewGormUnitOfWorkFactory(gormDB),
		deps: commands.Deps{
			Locks:    keylock.New(),
			Workflow: services.NewProcurementWorkflow(converter),
			Logger:   logging.Component(logger, "commands"),
			Metrics:  m,
		},
		logger:   logger,
		registry: registry,
	}, nil
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) requestUoWs() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.deps.Metrics
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.requestUoWs(), c.deps)
}

func (c *CompositionRoot) CreateUpdateRequestCommandHandler() commands.UpdateRequestCommandHandler {
	return commands.NewUpdateRequestCommandHandler(c.requestUoWs(), c.deps)
}

func (c *CompositionRoot) CreateDecideRequestCommandHandler() commands.DecideRequestCommandHandler {
	return commands.NewDecideRequestCommandHandler(c.requestUoWs(), c.deps)
}

func (c *CompositionRoot) CreateDeleteRequestCommandHandler() commands.DeleteRequestCommandHandler {
	return commands.NewDeleteRequestCommandHandler(c.uows(), c.deps)
}

func (c *CompositionRoot) CreateCreateNegotiationCommandHandler() commands.CreateNegotiationCommandHandler {
	return commands.NewCreateNegotiationCommandHandler(c.uows(), c.deps)
}

func (c *CompositionRoot) CreateUpdateNegotiationCommandHandler() commands.UpdateNegotiationCommandHandler {
	return commands.NewUpdateNegotiationCommandHandler(c.uows(), c.deps)
}

func (c *CompositionRoot) CreateDeleteNegotiationCommandHandler() commands.DeleteNegotiationCommandHandler {
	return commands.NewDeleteNegotiationCommandHandler(c.uows(), c.deps)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uows(), c.deps)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.uows(), c.deps)
}

func (c *CompositionRoot) CreateChangeOrderCommandHandler() commands.ChangeOrderCommandHandler {
	return commands.NewChangeOrderCommandHandler(c.uows(), c.deps)
}

func (c *CompositionRoot) CreatePendingBacklogQueryHandler() queries.PendingBacklogQueryHandler {
	return queries.NewPendingBacklogQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the REST adapter.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	handlers := http.Handlers{
		CreateRequest: c.CreateCreateRequestCommandHandler(),
		UpdateRequest: c.CreateUpdateRequestCommandHandler(),
		DecideRequest: c.CreateDecideRequestCommandHandler(),
		DeleteRequest: c.CreateDeleteRequestCommandHandler(),

		CreateNegotiation: c.CreateCreateNegotiationCommandHandler(),
		UpdateNegotiation: c.CreateUpdateNegotiationCommandHandler(),
		DeleteNegotiation: c.CreateDeleteNegotiationCommandHandler(),

		CreateOrder: c.CreateCreateOrderCommandHandler(),
		UpdateOrder: c.CreateUpdateOrderCommandHandler(),
		ChangeOrder: c.CreateChangeOrderCommandHandler(),

		GetRequest:       queries.NewGetRequestQueryHandler(c.gormDB),
		ListRequests:     queries.NewListRequestsQueryHandler(c.gormDB),
		GetNegotiation:   queries.NewGetNegotiationQueryHandler(c.gormDB),
		ListNegotiations: queries.NewListNegotiationsQueryHandler(c.gormDB),
		GetOrder:         queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrders:       queries.NewListOrdersQueryHandler(c.gormDB),
		VendorTotal:      queries.NewTotalOrderAmountByVendorQueryHandler(c.gormDB),
	}

	exporter := xlsx.NewOrdersExporter(logging.Component(c.logger, "xlsx"))
	return http.NewServer(handlers, exporter, logging.Component(c.logger, "http"), c.deps.Metrics, c.registry)
}

// CreateJobManager returns nil when no job is scheduled.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	spec := c.config.Jobs.BacklogReportSpec
	if spec == "" {
		return nil
	}
	return jobs.NewJobManager(c.CreatePendingBacklogQueryHandler(), c.deps.Metrics, spec, c.logger)
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
