package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"direct", "203.0.113.7:5555", "", "", "203.0.113.7"},
		{"untrusted proxy ignored", "203.0.113.7:5555", "198.51.100.1", "", "203.0.113.7"},
		{"trusted proxy forwarded for", "10.0.0.2:80", "198.51.100.1, 10.0.0.2", "", "198.51.100.1"},
		{"trusted proxy real ip", "127.0.0.1:80", "", "198.51.100.9", "198.51.100.9"},
		{"trusted proxy garbage header", "192.168.1.1:80", "not-an-ip", "", "192.168.1.1"},
		{"ipv6 loopback proxy", "[::1]:80", "2001:db8::1", "", "2001:db8::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := extractClientIP(r, nil); got != tt.want {
				t.Errorf("extractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractClientIPCountsInvalidAddresses(t *testing.T) {
	m := &securityMetrics{}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "garbage"
	if got := extractClientIP(r, m); got != "garbage" {
		t.Errorf("unexpected ip %q", got)
	}
	if m.snapshot()["invalid_ip_attempts"] != 1 {
		t.Error("expected invalid IP to be counted")
	}
}

func TestDetectSuspiciousRequest(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		userAgent string
		want      bool
	}{
		{"api call", "/api/report", "curl/8.0", false},
		{"dotenv probe", "/.env", "", true},
		{"traversal in query", "/api/transactions?x=../../etc/passwd", "", true},
		{"scanner agent", "/api/summary", "sqlmap/1.7", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &securityMetrics{}
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			r.Header.Set("User-Agent", tt.userAgent)
			if got := detectSuspiciousRequest(r, m); got != tt.want {
				t.Errorf("detectSuspiciousRequest() = %v, want %v", got, tt.want)
			}
			if tt.want && m.snapshot()["suspicious_requests"] != 1 {
				t.Error("expected suspicious request to be counted")
			}
		})
	}
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2)
	rl.now = func() time.Time { return now }
	m := &securityMetrics{}

	if !rl.allow("a", m) || !rl.allow("a", m) {
		t.Fatal("first two requests should pass")
	}
	if rl.allow("a", m) {
		t.Fatal("third request should be limited")
	}
	if !rl.allow("b", m) {
		t.Fatal("other clients have their own window")
	}

	now = now.Add(20 * time.Second)
	if got := rl.retryAfter("a"); got != 40 {
		t.Errorf("retryAfter = %d, want 40", got)
	}

	now = now.Add(40 * time.Second)
	if !rl.allow("a", m) {
		t.Fatal("window should reset after a minute")
	}
	if m.snapshot()["rate_limit_hits"] != 1 {
		t.Errorf("expected 1 hit, got %d", m.snapshot()["rate_limit_hits"])
	}

	now = now.Add(12 * time.Minute)
	if removed := rl.cleanupStaleEntries(); removed != 2 {
		t.Errorf("expected 2 stale clients removed, got %d", removed)
	}
	rl.stop()
	rl.stop()
}

func TestNewRateLimiterDefault(t *testing.T) {
	if rl := newRateLimiter(0); rl.limit != defaultRateLimit {
		t.Errorf("expected default limit %d, got %d", defaultRateLimit, rl.limit)
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", invalid(core.ErrEmptyDescription), http.StatusUnprocessableEntity},
		{"wrapped validation", fmt.Errorf("row 1: %w", invalid(core.ErrZeroDate)), http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("delete: %w", ledger.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("add: %w", ledger.ErrConflict), http.StatusConflict},
		{"bad request", fmt.Errorf("%w: eof", errBadRequest), http.StatusBadRequest},
		{"too large", &http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidationErrorUnwraps(t *testing.T) {
	err := invalid(core.ErrUnknownCategory)
	if !errors.Is(err, core.ErrUnknownCategory) {
		t.Error("validation error should unwrap to its cause")
	}
}
