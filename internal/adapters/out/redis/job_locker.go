// Package redis leases periodic jobs across replicas.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fulfillment:job:"

// JobLocker implements ports.JobLocker with a redislock lease. The lease
// expires on its own after ttl, so a crashed holder never blocks the job.
type JobLocker struct {
	locker *redislock.Client
}

func NewJobLocker(client redis.UniversalClient) (*JobLocker, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("redis client")
	}
	return &JobLocker{locker: redislock.New(client)}, nil
}

// NewClient connects to addr and pings it.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func (l *JobLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	if name == "" {
		return nil, false, errs.NewValueIsRequiredError("job name")
	}
	if ttl <= 0 {
		return nil, false, errs.NewValueIsOutOfRangeError("lease ttl", ttl, time.Millisecond, "unbounded")
	}

	lock, err := l.locker.Obtain(ctx, keyPrefix+name, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("obtain lease %s: %w", name, err)
	}

	release := func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}
	return release, true, nil
}

// LocalJobLocker serializes jobs within one process. It is used when no
// Redis address is configured, i.e. for a single replica.
type LocalJobLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalJobLocker() *LocalJobLocker {
	return &LocalJobLocker{held: make(map[string]struct{})}
}

func (l *LocalJobLocker) TryLock(_ context.Context, name string, _ time.Duration) (func(context.Context) error, bool, error) {
	if name == "" {
		return nil, false, errs.NewValueIsRequiredError("job name")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[name]; ok {
		return nil, false, nil
	}
	l.held[name] = struct{}{}

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, name)
		return nil
	}
	return release, true, nil
}
