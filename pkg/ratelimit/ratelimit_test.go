package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, max int, window time.Duration, clock *time.Time) *LoginLimiter {
	t.Helper()
	rl := NewLoginLimiter(max, window)
	rl.now = func() time.Time { return *clock }
	t.Cleanup(rl.Stop)
	return rl
}

func TestLoginLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	rl := newTestLimiter(t, 3, time.Minute, &now)

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("1.2.3.4"), "attempt %d", i+1)
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "other IPs are independent")
	assert.Equal(t, 61, rl.RetryAfterSeconds("1.2.3.4"))
}

func TestLoginLimiter_WindowExpiryAndReset(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	rl := newTestLimiter(t, 1, time.Minute, &now)

	require.True(t, rl.Allow("ip"))
	require.False(t, rl.Allow("ip"))

	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("ip"), "new window starts after expiry")

	require.False(t, rl.Allow("ip"))
	rl.Reset("ip")
	assert.True(t, rl.Allow("ip"))
	assert.Equal(t, 0, rl.RetryAfterSeconds("unknown"))
}

func TestLoginLimiter_DisabledWhenMaxIsZero(t *testing.T) {
	now := time.Now()
	rl := newTestLimiter(t, 0, time.Minute, &now)
	for i := 0; i < 50; i++ {
		require.True(t, rl.Allow("ip"))
	}
}

func TestLoginLimiter_CleanupDropsStaleBuckets(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	rl := newTestLimiter(t, 5, time.Minute, &now)

	rl.Allow("a")
	now = now.Add(2 * time.Minute)
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.buckets)
}

func TestExtractIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", ExtractIP(r))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", ExtractIP(r))

	r.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	assert.Equal(t, "10.0.0.3", ExtractIP(r))
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "2 minute(s)", FormatRetryMessage(120))
	assert.Equal(t, "45 second(s)", FormatRetryMessage(45))
}
