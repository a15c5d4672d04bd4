// Package jobs provides scheduled background tasks for the procurement service.
//
// Jobs use github.com/robfig/cron/v3 with six-field (seconds) expressions and
// are started and stopped together through JobManager:
//
//	jobManager := jobs.NewJobManager(backlogHandler, metrics, cfg.Jobs.BacklogReportSpec, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// BacklogReportJob counts Pending requests, negotiations and orders, exports
// them as the procurement_pending_records gauge and logs the numbers.
package jobs
