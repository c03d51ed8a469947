package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(uuid.New(), "Ahmed.Ali", "s3cret-pass", RoleOwner)

		require.NoError(t, err)
		assert.Equal(t, "ahmed.ali", user.Username)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cret-pass"))
		assert.False(t, user.VerifyPassword("wrong"))
		assert.True(t, user.IsActive())
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "ahmed", "short", RoleStaff)
		assert.Error(t, err)
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		for _, name := range []string{"ab", "has space", "عربي"} {
			_, err := NewUser(uuid.New(), name, "s3cret-pass", RoleStaff)
			assert.Error(t, err, "username %q should be rejected", name)
		}
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser(uuid.New(), "ahmed", "s3cret-pass", UserRole("superadmin"))
		assert.Error(t, err)
	})
}

func TestUserPassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "ahmed", "s3cret-pass", RoleStaff)
	require.NoError(t, err)

	t.Run("change requires current password", func(t *testing.T) {
		assert.Error(t, user.ChangePassword("wrong", "new-password"))
		require.NoError(t, user.ChangePassword("s3cret-pass", "new-password"))
		assert.True(t, user.VerifyPassword("new-password"))
	})

	t.Run("admin reset skips current password", func(t *testing.T) {
		require.NoError(t, user.SetPassword("reset-password"))
		assert.True(t, user.VerifyPassword("reset-password"))
	})
}

func TestUserStatus(t *testing.T) {
	user, err := NewUser(uuid.New(), "ahmed", "s3cret-pass", RoleStaff)
	require.NoError(t, err)

	user.Deactivate()
	assert.False(t, user.IsActive())

	user.Activate()
	assert.True(t, user.IsActive())
}
