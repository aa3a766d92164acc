package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// JobManager starts and stops every scheduled job of the service.
type JobManager struct {
	idempotencyPurgeJob *IdempotencyPurgeJob
}

func NewJobManager(
	purgeHandler idempotencyPurger,
	locker ports.JobLocker,
	purgeSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		idempotencyPurgeJob: NewIdempotencyPurgeJob(purgeHandler, locker, purgeSchedule, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.idempotencyPurgeJob.Start(); err != nil {
		return fmt.Errorf("failed to start idempotency purge job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.idempotencyPurgeJob.Stop()
}
