package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/user"
)

// UserRepository is the directory of custody actors.
type UserRepository interface {
	Add(ctx context.Context, u *user.User) error

	// FindByTag resolves a scanned NFC tag by exact user id or employee id.
	// Returns *errs.ObjectNotFoundError when nobody matches.
	FindByTag(ctx context.Context, tagID string) (*user.User, error)
}
