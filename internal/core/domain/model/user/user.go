package user

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a custody actor. An NFC tag encodes either the user id or the
// employee id.
type User struct {
	id          kernel.UUID
	employeeID  string
	displayName string

	guard guard.ConstructorGuard
}

func NewUser(id kernel.UUID, employeeID, displayName string) (*User, error) {
	u := &User{
		guard: guard.NewConstructorGuard(),
	}

	employeeID = strings.TrimSpace(employeeID)
	displayName = strings.TrimSpace(displayName)

	var err error
	if idErr := id.Validate(); idErr != nil {
		err = errors.Join(err, idErr)
	}
	if employeeID == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("employee id"))
	}
	if displayName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("display name"))
	}
	if err != nil {
		return nil, err
	}

	u.id = id
	u.employeeID = employeeID
	u.displayName = displayName
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID     { return u.id }
func (u *User) EmployeeID() string  { return u.employeeID }
func (u *User) DisplayName() string { return u.displayName }

// MatchesTag reports whether a scanned tag identifies u: exact user id or
// exact employee id.
func (u *User) MatchesTag(tagID string) bool {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return false
	}
	return tagID == u.id.String() || tagID == u.employeeID
}
