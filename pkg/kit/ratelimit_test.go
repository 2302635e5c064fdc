package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_AllowsBurstThenBlocks(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(3, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "buckets are per ip")

	now = now.Add(time.Minute)
	assert.True(t, l.Allow("10.0.0.1"), "bucket refills over the window")
}

func TestIPRateLimiter_DropsIdleVisitors(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(1, time.Second)
	l.now = func() time.Time { return now }

	l.Allow("a")
	l.Allow("b")
	now = now.Add(2 * limiterIdleTTL)
	l.Allow("c")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.visitors, 1)
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	send := func(h http.Handler, xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/session", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		if xff != "" {
			req.Header.Set("X-Forwarded-For", xff)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("forwarded header ignored by default", func(t *testing.T) {
		h := NewIPRateLimiter(1, time.Hour).Middleware(next)

		assert.Equal(t, http.StatusNoContent, send(h, ""))
		assert.Equal(t, http.StatusTooManyRequests, send(h, ""))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "203.0.113.7"), "a spoofed header must not open a new bucket")
	})

	t.Run("forwarded header trusted behind proxy", func(t *testing.T) {
		l := NewIPRateLimiter(1, time.Hour)
		l.TrustForwardedFor = true
		h := l.Middleware(next)

		assert.Equal(t, http.StatusNoContent, send(h, "203.0.113.7, 10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "203.0.113.7"))
		assert.Equal(t, http.StatusNoContent, send(h, "198.51.100.1"))
	})
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:1234"
	req.Header.Set("X-Forwarded-For", " 203.0.113.9 ,10.1.1.1")

	l := NewIPRateLimiter(1, time.Second)
	assert.Equal(t, "198.51.100.4", l.clientIP(req))

	l.TrustForwardedFor = true
	assert.Equal(t, "203.0.113.9", l.clientIP(req))
}
