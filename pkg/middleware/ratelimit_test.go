package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowAndReject(t *testing.T) {
	l := NewRateLimiter(RateLimitConfig{RPS: 1, Burst: 2}, newTestLogger(&bytes.Buffer{}))
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	ok, _ := l.Allow("a")
	assert.True(t, ok)
	ok, _ = l.Allow("a")
	assert.True(t, ok)

	ok, wait := l.Allow("a")
	assert.False(t, ok)
	assert.InDelta(t, time.Second.Seconds(), wait.Seconds(), 0.01)

	// Other clients have their own bucket.
	ok, _ = l.Allow("b")
	assert.True(t, ok)

	now = now.Add(time.Second)
	ok, _ = l.Allow("a")
	assert.True(t, ok)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	l := NewRateLimiter(RateLimitConfig{RPS: 5, IdleTTL: time.Minute}, newTestLogger(&bytes.Buffer{}))
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("a")
	l.Allow("b")
	assert.Equal(t, 2, l.Len())

	now = now.Add(2 * time.Minute)
	l.Allow("c")
	assert.Equal(t, 1, l.Len())
}

func TestRateLimiter_Middleware(t *testing.T) {
	l := NewRateLimiter(RateLimitConfig{RPS: 0.5, Burst: 1}, newTestLogger(&bytes.Buffer{}))
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	req.Header.Set(HeaderVisitorID, "v-1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestRateLimiter_DisabledWhenZero(t *testing.T) {
	l := NewRateLimiter(RateLimitConfig{}, newTestLogger(&bytes.Buffer{}))
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	h := l.Middleware(next)

	for range 50 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:4444"
	assert.Equal(t, "ip:203.0.113.7", ClientKey(req))

	req.Header.Set(HeaderVisitorID, "v-9")
	assert.Equal(t, "ip:203.0.113.7", ClientKey(req))
}

func TestRateLimiter_RotatingVisitorIDsShareBucket(t *testing.T) {
	l := NewRateLimiter(RateLimitConfig{RPS: 1, Burst: 1}, newTestLogger(&bytes.Buffer{}))
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	passed := 0
	for i := range 1000 {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set(HeaderVisitorID, fmt.Sprintf("v%d", i))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			passed++
		}
	}

	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, l.Len())
}
