package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Admin.User", "s3cret-pass", "Admin User", "admin")
	require.NoError(t, err)

	assert.Equal(t, "admin.user", user.Username)
	assert.Equal(t, UserStatusActive, user.Status)
	assert.True(t, user.VerifyPassword("s3cret-pass"))
	assert.False(t, user.VerifyPassword("wrong"))
}

func TestNewUser_Validation(t *testing.T) {
	t.Run("short username", func(t *testing.T) {
		_, err := NewUser("ab", "s3cret-pass", "", "")
		require.Error(t, err)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := NewUser("operator", "short", "", "")
		require.Error(t, err)
	})
}

func TestRecordFailedLogin_LocksAfterThreshold(t *testing.T) {
	user, err := NewUser("operator", "s3cret-pass", "", "")
	require.NoError(t, err)

	for i := 0; i < maxFailedAttempts; i++ {
		user.RecordFailedLogin()
	}

	assert.Equal(t, UserStatusLocked, user.Status)
	assert.False(t, user.CanLogin())
}

func TestRecordLogin_ResetsFailures(t *testing.T) {
	user, err := NewUser("operator", "s3cret-pass", "", "")
	require.NoError(t, err)

	user.RecordFailedLogin()
	user.RecordLogin()

	assert.Equal(t, 0, user.FailedAttempts)
	require.NotNil(t, user.LastLoginAt)
}

func TestChangePassword(t *testing.T) {
	user, err := NewUser("operator", "s3cret-pass", "", "")
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("new-password"))
	assert.True(t, user.VerifyPassword("new-password"))
	assert.False(t, user.VerifyPassword("s3cret-pass"))

	require.Error(t, user.ChangePassword("short"))
}
