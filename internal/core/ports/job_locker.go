package ports

import (
	"context"
	"time"
)

// JobLocker grants a short exclusive lease so that a periodic job runs on one
// replica per tick.
type JobLocker interface {
	// TryLock returns a release func when the lease was obtained, and
	// acquired == false when another holder has it.
	TryLock(ctx context.Context, name string, ttl time.Duration) (release func(context.Context) error, acquired bool, err error)
}
