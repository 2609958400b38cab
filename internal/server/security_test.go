package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5, 10, time.Minute)
	defer rl.Stop()
	ip := "127.0.0.1"

	for i := range 5 {
		assert.True(t, rl.Allow(ip), "request %d should be allowed", i)
	}
	assert.False(t, rl.Allow(ip))
	assert.True(t, rl.IsBanned(ip))
	assert.False(t, rl.IsBanned("10.0.0.1"))
}

func TestRateLimiter_BanExpires(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 100, 30*time.Second)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	ip := "192.168.1.1"
	assert.True(t, rl.Allow(ip))
	assert.False(t, rl.Allow(ip))

	now = now.Add(10 * time.Second)
	assert.False(t, rl.Allow(ip), "still banned")

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow(ip))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, 10, time.Second)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(11 * time.Minute)
	rl.Allow("b")
	rl.cleanup()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	assert.NotContains(t, rl.requests, "a")
	assert.Contains(t, rl.requests, "b")
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"wildcard", []string{"*"}, "https://evil.example", true},
		{"listed", []string{"https://uno.example"}, "https://UNO.example", true},
		{"not listed", []string{"https://uno.example"}, "https://evil.example", false},
		{"terminal client without origin", []string{"https://uno.example"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, NewOriginChecker(tt.allowed).Check(r))
		})
	}
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.RemoteAddr = "10.1.1.1:5555"
	assert.Equal(t, "10.1.1.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "172.16.0.9")
	assert.Equal(t, "172.16.0.9", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", GetClientIP(r))
}

func TestMessageRateLimiter(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	ml := NewMessageRateLimiter(4)
	ml.now = func() time.Time { return now }
	id := "client1"

	for i := range 4 {
		allowed, warning := ml.AllowMessage(id)
		assert.True(t, allowed)
		assert.Equal(t, i >= 2, warning, "message %d", i)
	}

	allowed, warning := ml.AllowMessage(id)
	assert.False(t, allowed)
	assert.True(t, warning)
	assert.Equal(t, 1, ml.GetWarningCount(id))

	now = now.Add(time.Second)
	allowed, warning = ml.AllowMessage(id)
	assert.True(t, allowed)
	assert.False(t, warning)

	ml.RemoveClient(id)
	assert.Zero(t, ml.GetWarningCount(id))
}
