// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager, which offers a unified start/stop interface:
//
//	jobManager := jobs.NewJobManager(orderRepository, 30*time.Minute, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// 1. StaleOrderWatchJob - Runs every minute and reports orders that have
// been waiting for a deliverer longer than the configured threshold.
// The job only observes; assignment stays with the delivery service.
package jobs
