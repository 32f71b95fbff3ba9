// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the warehouse pipeline.
//
// # Available Jobs
//
// 1. ArrivalTokenJob - Runs every thirty seconds to mint arrival tokens for
// in-transit shipments whose containers are fully scanned.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(uowFactory, mintHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The arrival token job skips shipments whose state changed between
// listing and minting; those are expected business scenarios
// - Token values returned by the mint handler are never logged
// - Failed job starts will stop any already running jobs
package jobs
