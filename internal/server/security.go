package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/ChatterBot_Go/internal/logger"
)

func isPublic(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AuthMiddleware requires the X-API-Key header on every non-public path
func AuthMiddleware(apiKey string, detector *RateDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				ip := clientIP(r)
				if detector != nil {
					detector.RecordFailedAuth(ip)
				}
				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", provided != "",
					"ip", ip)
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderContentType, HeaderValueNoSniff)
		w.Header().Set(HeaderFrameOptions, HeaderValueDeny)
		w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
		next.ServeHTTP(w, r)
	})
}

// RateDetector counts requests and failed logins per client IP in fixed windows.
type RateDetector struct {
	mu          sync.Mutex
	failedAuth  map[string]int
	requests    map[string]int
	windowStart time.Time
	limit       int
	now         func() time.Time
}

// NewRateDetector allows up to limit requests per IP in each RateWindow.
func NewRateDetector(limit int) *RateDetector {
	return &RateDetector{
		failedAuth:  make(map[string]int),
		requests:    make(map[string]int),
		windowStart: time.Now(),
		limit:       limit,
		now:         time.Now,
	}
}

// RecordFailedAuth counts a failed authentication and alerts past the threshold
func (d *RateDetector) RecordFailedAuth(ip string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindow()
	d.failedAuth[ip]++
	if d.failedAuth[ip] >= FailedAuthAlertAfter {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", d.failedAuth[ip])
	}
}

// Allow counts a request and reports whether ip is still under the limit
func (d *RateDetector) Allow(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindow()
	d.requests[ip]++
	n := d.requests[ip]
	if n <= d.limit {
		return true
	}
	if n%RateLogEveryNRequests == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", n)
	}
	return false
}

// rollWindow must be called with mu held
func (d *RateDetector) rollWindow() {
	if d.now().Sub(d.windowStart) > RateWindow {
		d.requests = make(map[string]int)
		d.failedAuth = make(map[string]int)
		d.windowStart = d.now()
	}
}

// RateLimitMiddleware rejects clients over the detector's limit with 429
func RateLimitMiddleware(detector *RateDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.Allow(clientIP(r)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the remote host. X-Forwarded-For is ignored since no proxy is trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
