package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultPurgeSchedule runs the purge at the top of every minute.
const DefaultPurgeSchedule = "0 * * * * *"

const purgeJobName = "idempotency-purge"

type idempotencyPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeIdempotencyKeysCommand) (int64, error)
}

// IdempotencyPurgeJob deletes idempotency records past their retention
// window. Each tick takes a lease first, so with several replicas only one
// of them purges.
type IdempotencyPurgeJob struct {
	handler  idempotencyPurger
	locker   ports.JobLocker
	schedule string
	leaseTTL time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewIdempotencyPurgeJob(
	handler idempotencyPurger,
	locker ports.JobLocker,
	schedule string,
	logger *slog.Logger,
) *IdempotencyPurgeJob {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}

	return &IdempotencyPurgeJob{
		handler:  handler,
		locker:   locker,
		schedule: schedule,
		leaseTTL: 30 * time.Second,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "idempotency_purge_job"),
	}
}

func (j *IdempotencyPurgeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Idempotency purge job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single tick. A tick whose lease is held elsewhere does nothing.
func (j *IdempotencyPurgeJob) RunOnce(ctx context.Context) {
	release, acquired, err := j.locker.TryLock(ctx, purgeJobName, j.leaseTTL)
	if err != nil {
		j.logger.ErrorContext(ctx, "Idempotency purge lease failed", "error", err)
		return
	}
	if !acquired {
		j.logger.DebugContext(ctx, "Idempotency purge skipped, lease held elsewhere")
		return
	}
	defer func() {
		if err := release(ctx); err != nil {
			j.logger.WarnContext(ctx, "Idempotency purge lease release failed", "error", err)
		}
	}()

	purged, err := j.handler.Handle(ctx, commands.NewPurgeIdempotencyKeysCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Idempotency purge job failed", "error", err)
		return
	}
	if purged > 0 {
		j.logger.InfoContext(ctx, "Expired idempotency keys purged", "count", purged)
	}
}

// Stop waits for a running tick to finish.
func (j *IdempotencyPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Idempotency purge job stopped")
}
