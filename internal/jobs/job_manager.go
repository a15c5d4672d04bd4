package jobs

import (
	"fmt"

	"procurement/internal/pkg/metrics"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	backlogReportJob *BacklogReportJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(backlog BacklogReader, m *metrics.Metrics, backlogSpec string, logger *zap.Logger) *JobManager {
	return &JobManager{
		backlogReportJob: NewBacklogReportJob(backlog, m, backlogSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.backlogReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start backlog report job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.backlogReportJob.Stop()
}
