package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand adds a custody actor to the directory.
type RegisterUserCommand struct {
	user *user.User

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(id kernel.UUID, employeeID, displayName string) (RegisterUserCommand, error) {
	u, err := user.NewUser(id, employeeID, displayName)
	if err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		user:  u,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.user.ID()
}
