package user_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("should trim fields", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), " E-100 ", " Dana Driver ")

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.Equal(t, "E-100", u.EmployeeID())
		assert.Equal(t, "Dana Driver", u.DisplayName())
	})

	t.Run("should aggregate errors", func(t *testing.T) {
		u, err := user.NewUser(kernel.UUID{}, "", "")

		require.Error(t, err)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "employee id")
		assert.Contains(t, err.Error(), "display name")
	})
}

func TestUser_MatchesTag(t *testing.T) {
	id := kernel.NewUUID()
	u, err := user.NewUser(id, "E-100", "Dana Driver")
	require.NoError(t, err)

	assert.True(t, u.MatchesTag(id.String()))
	assert.True(t, u.MatchesTag("E-100"))
	assert.True(t, u.MatchesTag(" E-100 "))
	assert.False(t, u.MatchesTag("e-100"))
	assert.False(t, u.MatchesTag(""))
	assert.False(t, u.MatchesTag("Dana Driver"))
}
