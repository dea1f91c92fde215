// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field specs with seconds).
//
// # Available Jobs
//
// 1. PendingSweepJob - offers queued items to routes and drivers again
// 2. SnapshotJob - saves the in-memory state to the snapshot store
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepJob, snapshotJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Failed runs are logged and retried on the next tick
// - Stopping the snapshot job takes one last snapshot
// - Failed job starts stop any already running jobs
package jobs
