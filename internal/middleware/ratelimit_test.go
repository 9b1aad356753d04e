package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dungeonworks/gateway/internal/logging"
)

func rateLimitedHandler(rl *RateLimiter) http.Handler {
	return rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRateLimiter_BlocksBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2, logging.New("test", "error", "text"))
	handler := rateLimitedHandler(rl)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/player_stats", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
		if i < 2 && last.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200 within burst", i, last.Code)
		}
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 beyond burst", last.Code)
	}
	if !strings.Contains(last.Body.String(), "rate limit exceeded") {
		t.Errorf("body = %s, want structured rate limit error", last.Body.String())
	}
}

func TestRateLimiter_KeysCallersIndependently(t *testing.T) {
	rl := NewRateLimiter(1, 1, logging.New("test", "error", "text"))
	handler := rateLimitedHandler(rl)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("first caller status = %d, want 200", code)
	}
	if code := send("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("first caller second request = %d, want 429", code)
	}
	// A different caller has its own bucket.
	if code := send("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("second caller status = %d, want 200", code)
	}
}

func TestRateLimiter_PrefersPlayerIDKey(t *testing.T) {
	rl := NewRateLimiter(1, 1, logging.New("test", "error", "text"))
	handler := rateLimitedHandler(rl)

	send := func(playerID, addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		req = req.WithContext(logging.WithPlayerID(req.Context(), playerID))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Same player across two addresses shares one bucket.
	if code := send("7", "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if code := send("7", "10.0.0.2:5678"); code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429 for the same player", code)
	}
}

func TestRateLimiter_SweepEvictsIdleEntries(t *testing.T) {
	rl := NewRateLimiter(1, 1, logging.New("test", "error", "text"))

	rl.getLimiter("stale")
	rl.getLimiter("active")
	rl.mu.Lock()
	rl.entries["stale"].lastSeen = time.Now().Add(-time.Hour)
	rl.mu.Unlock()

	rl.sweep(time.Now().Add(-entryTTL))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.entries["stale"]; ok {
		t.Error("stale entry survived the sweep")
	}
	if _, ok := rl.entries["active"]; !ok {
		t.Error("active entry was evicted")
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, 1, logging.New("test", "error", "text"))
	rl.StartCleanup(time.Millisecond)

	rl.Stop()
	rl.Stop()
}
