// Package jobs provides scheduled background tasks for the routing service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// InstanceImportJob scans an inbox directory for *.vrp instance files, builds a
// routing plan from each new file and publishes it to the solver.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	importJob := jobs.NewInstanceImportJob(handler, publisher, "/var/inbox", "", logger)
//	jobManager := jobs.NewJobManager(importJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field. Runs of the same
// job never overlap; a tick that fires while the previous run is still busy is
// skipped.
//
// # Error Handling
//
// - Files that cannot be parsed are logged once and skipped afterwards
// - Publishing failures are logged and retried on the next run
// - Failed job starts will stop any already running jobs
package jobs
