// Package jobs provides scheduled background tasks of the fulfillment service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field. The only job today
// is IdempotencyPurgeJob, which deletes idempotency records whose retention
// window has ended.
//
//	jobManager := jobs.NewJobManager(purgeHandler, locker, "0 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Every tick obtains a ports.JobLocker lease before doing any work, so running
// several replicas does not multiply the purges. Failures are logged and the
// next tick tries again.
package jobs
