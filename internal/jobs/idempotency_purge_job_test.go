package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPurger struct{ mock.Mock }

func (m *mockPurger) Handle(ctx context.Context, cmd commands.PurgeIdempotencyKeysCommand) (int64, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(int64), args.Error(1)
}

type mockLocker struct{ mock.Mock }

func (m *mockLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	args := m.Called(ctx, name, ttl)
	release, _ := args.Get(0).(func(context.Context) error)
	return release, args.Bool(1), args.Error(2)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIdempotencyPurgeJob_RunOnce(t *testing.T) {
	t.Run("should purge under lease and release it", func(t *testing.T) {
		ctx := context.Background()
		released := false
		release := func(context.Context) error { released = true; return nil }

		locker := new(mockLocker)
		locker.On("TryLock", ctx, purgeJobName, 30*time.Second).Return(release, true, nil).Once()
		purger := new(mockPurger)
		purger.On("Handle", ctx, mock.Anything).Return(int64(3), nil).Once()

		job := NewIdempotencyPurgeJob(purger, locker, "", discardLogger())
		job.RunOnce(ctx)

		purger.AssertExpectations(t)
		locker.AssertExpectations(t)
		assert.True(t, released)
	})

	t.Run("should skip when lease is held elsewhere", func(t *testing.T) {
		ctx := context.Background()
		locker := new(mockLocker)
		locker.On("TryLock", ctx, purgeJobName, mock.Anything).Return(nil, false, nil).Once()
		purger := new(mockPurger)

		NewIdempotencyPurgeJob(purger, locker, "", discardLogger()).RunOnce(ctx)

		purger.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should skip when lease errors", func(t *testing.T) {
		ctx := context.Background()
		locker := new(mockLocker)
		locker.On("TryLock", ctx, purgeJobName, mock.Anything).Return(nil, false, errors.New("redis down")).Once()
		purger := new(mockPurger)

		NewIdempotencyPurgeJob(purger, locker, "", discardLogger()).RunOnce(ctx)

		purger.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should release lease even when purge fails", func(t *testing.T) {
		ctx := context.Background()
		released := false
		release := func(context.Context) error { released = true; return nil }

		locker := new(mockLocker)
		locker.On("TryLock", ctx, purgeJobName, mock.Anything).Return(release, true, nil).Once()
		purger := new(mockPurger)
		purger.On("Handle", ctx, mock.Anything).Return(int64(0), errors.New("db down")).Once()

		NewIdempotencyPurgeJob(purger, locker, "", discardLogger()).RunOnce(ctx)

		assert.True(t, released)
	})
}

func TestIdempotencyPurgeJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewIdempotencyPurgeJob(new(mockPurger), new(mockLocker), "not a cron spec", discardLogger())

	assert.Error(t, job.Start())
}

func TestJobManager_StartStop(t *testing.T) {
	jm := NewJobManager(new(mockPurger), new(mockLocker), "0 0 0 1 1 *", discardLogger())

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
