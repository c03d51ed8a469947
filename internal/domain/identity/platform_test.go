package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlatform(t *testing.T) {
	t.Run("creates active platform", func(t *testing.T) {
		platform, err := NewPlatform("متجر الأناقة", "Anaqa-Store")

		require.NoError(t, err)
		assert.Equal(t, PlatformStatusActive, platform.Status)
		assert.Equal(t, "anaqa-store", platform.Subdomain)
		assert.Len(t, platform.GetDomainEvents(), 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewPlatform(" ", "store")
		assert.Error(t, err)
	})

	t.Run("rejects invalid subdomain", func(t *testing.T) {
		for _, sub := range []string{"", "-store", "store-", "st ore", "متجر"} {
			_, err := NewPlatform("متجر", sub)
			assert.Error(t, err, "subdomain %q should be rejected", sub)
		}
	})
}

func TestPlatformLifecycle(t *testing.T) {
	t.Run("suspend and reactivate", func(t *testing.T) {
		platform, err := NewPlatform("متجر", "store")
		require.NoError(t, err)

		require.NoError(t, platform.Suspend("مخالفة الشروط"))
		assert.Equal(t, PlatformStatusSuspended, platform.Status)
		assert.False(t, platform.CanOperate())

		require.NoError(t, platform.Reactivate())
		assert.Equal(t, PlatformStatusActive, platform.Status)
		assert.Empty(t, platform.SuspendedReason)
	})

	t.Run("cancelled is final", func(t *testing.T) {
		platform, err := NewPlatform("متجر", "store")
		require.NoError(t, err)

		platform.Cancel()
		assert.Error(t, platform.Suspend("x"))
		assert.Error(t, platform.Reactivate())
	})
}

func TestPlatformSubscription(t *testing.T) {
	t.Run("expiry moves active platform to expired", func(t *testing.T) {
		platform, err := NewPlatform("متجر", "store")
		require.NoError(t, err)

		past := time.Now().Add(-time.Hour)
		require.NoError(t, platform.ExtendSubscription(past.Add(time.Minute)))

		assert.True(t, platform.MarkSubscriptionExpired(time.Now()))
		assert.Equal(t, PlatformStatusSubscriptionExpired, platform.Status)
		assert.False(t, platform.CanOperate())
	})

	t.Run("extension reactivates expired platform", func(t *testing.T) {
		platform, err := NewPlatform("متجر", "store")
		require.NoError(t, err)
		require.NoError(t, platform.ExtendSubscription(time.Now().Add(time.Minute)))
		platform.MarkSubscriptionExpired(time.Now().Add(time.Hour))
		require.Equal(t, PlatformStatusSubscriptionExpired, platform.Status)

		require.NoError(t, platform.ExtendSubscription(time.Now().Add(30*24*time.Hour)))
		assert.Equal(t, PlatformStatusActive, platform.Status)
	})

	t.Run("expiry cannot move backwards", func(t *testing.T) {
		platform, err := NewPlatform("متجر", "store")
		require.NoError(t, err)
		require.NoError(t, platform.ExtendSubscription(time.Now().Add(48*time.Hour)))

		assert.Error(t, platform.ExtendSubscription(time.Now().Add(time.Hour)))
	})

	t.Run("platform without expiry never expires", func(t *testing.T) {
		platform, err := NewPlatform("متجر", "store")
		require.NoError(t, err)

		assert.False(t, platform.MarkSubscriptionExpired(time.Now()))
	})
}
