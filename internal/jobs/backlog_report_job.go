package jobs

import (
	"context"

	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/pkg/logging"
	"procurement/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultBacklogReportSpec runs the report every five minutes.
const DefaultBacklogReportSpec = "0 */5 * * * *"

// BacklogReader counts the Pending records of every stage.
type BacklogReader interface {
	Handle(ctx context.Context) (queries.PendingBacklog, error)
}

// BacklogReportJob publishes the Pending backlog as gauges and logs it.
type BacklogReportJob struct {
	reader  BacklogReader
	metrics *metrics.Metrics
	spec    string
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewBacklogReportJob creates the job. spec is a six-field cron expression;
// an empty spec means DefaultBacklogReportSpec.
func NewBacklogReportJob(reader BacklogReader, m *metrics.Metrics, spec string, logger *zap.Logger) *BacklogReportJob {
	if spec == "" {
		spec = DefaultBacklogReportSpec
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BacklogReportJob{
		reader:  reader,
		metrics: m,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logging.Component(logger, "backlog_report_job"),
	}
}

// Run reports the backlog once.
func (j *BacklogReportJob) Run(ctx context.Context) error {
	backlog, err := j.reader.Handle(ctx)
	if err != nil {
		return err
	}

	j.metrics.SetBacklog("requests", backlog.Requests)
	j.metrics.SetBacklog("negotiations", backlog.Negotiations)
	j.metrics.SetBacklog("orders", backlog.Orders)

	j.logger.Info("pending backlog",
		zap.Int64("requests", backlog.Requests),
		zap.Int64("negotiations", backlog.Negotiations),
		zap.Int64("orders", backlog.Orders))
	return nil
}

// Start schedules the job. The first report is taken right away.
func (j *BacklogReportJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		if err := j.Run(context.Background()); err != nil {
			j.logger.Error("backlog report failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	if err = j.Run(context.Background()); err != nil {
		j.logger.Warn("initial backlog report failed", zap.Error(err))
	}

	j.cron.Start()
	j.logger.Info("backlog report job started", zap.String("spec", j.spec))
	return nil
}

// Stop stops the schedule and waits for a running report to finish.
func (j *BacklogReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("backlog report job stopped")
}
