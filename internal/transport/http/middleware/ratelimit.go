package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"hrdesk/internal/platform/logger"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/shared"
)

const msgTooManyAttempts = "Too many attempts. Please try again later."

type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*rateLimiter)

type rateBucket struct {
	count int
	reset time.Time
}

// rateLimiter is a fixed-window counter per key.
type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	keyFn   RateLimitKeyFunc
	now     func() time.Time
	clients map[string]*rateBucket
}

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(rl *rateLimiter) {
		if fn != nil {
			rl.keyFn = fn
		}
	}
}

func withClock(now func() time.Time) RateLimitOption {
	return func(rl *rateLimiter) {
		rl.now = now
	}
}

// RateLimit allows limit requests per key per window. The key defaults to
// the client IP. A non-positive limit disables the check.
func RateLimit(limit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	rl := newRateLimiter(limit, window, ClientIPKey)
	for _, opt := range opts {
		opt(rl)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.enforce(w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoginRateLimit throttles POSTs by client IP and, separately, by the
// submitted email so one address cannot be sprayed from many hosts.
func LoginRateLimit(limit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	byIP := newRateLimiter(limit, window, ClientIPKey)
	byEmail := newRateLimiter(limit, window, FormEmailOrIPKey("email"))
	for _, opt := range opts {
		opt(byIP)
		opt(byEmail)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			if !byIP.enforce(w, r) || !byEmail.enforce(w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ClientIPKey(r *http.Request) string {
	return "ip:" + shared.ClientIP(r)
}

// ActorOrIPKey keys on the signed-in employee and falls back to the client IP.
func ActorOrIPKey(r *http.Request) string {
	if identity, ok := GetIdentity(r.Context()); ok {
		return "employee:" + strconv.FormatInt(identity.EmployeeID, 10)
	}
	return ClientIPKey(r)
}

// Optional returns mw, or a pass-through when mw is nil.
func Optional(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw != nil {
		return mw
	}
	return func(next http.Handler) http.Handler { return next }
}

// FormEmailOrIPKey keys on a lowercased form field and falls back to the
// client IP when it is blank.
func FormEmailOrIPKey(field string) RateLimitKeyFunc {
	return func(r *http.Request) string {
		email := strings.ToLower(strings.TrimSpace(r.PostFormValue(field)))
		if email == "" {
			return ClientIPKey(r)
		}
		return "email:" + email
	}
}

func newRateLimiter(limit int, window time.Duration, keyFn RateLimitKeyFunc) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		window:  window,
		keyFn:   keyFn,
		now:     time.Now,
		clients: map[string]*rateBucket{},
	}
}

func (rl *rateLimiter) enforce(w http.ResponseWriter, r *http.Request) bool {
	if rl.limit <= 0 {
		return true
	}

	key := rl.keyFn(r)
	if key == "" {
		key = ClientIPKey(r)
	}
	now := rl.now()

	rl.mu.Lock()
	for k, b := range rl.clients {
		if now.After(b.reset) {
			delete(rl.clients, k)
		}
	}
	bucket, ok := rl.clients[key]
	if !ok {
		bucket = &rateBucket{reset: now.Add(rl.window)}
		rl.clients[key] = bucket
	}
	bucket.count++
	remaining := rl.limit - bucket.count
	resetIn := durationSeconds(bucket.reset.Sub(now))
	overLimit := bucket.count > rl.limit
	rl.mu.Unlock()

	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(remaining, 0)))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetIn))

	if overLimit {
		w.Header().Set("Retry-After", strconv.Itoa(max(resetIn, 1)))
		logger.FromContext(r.Context()).Warn().
			Str("key", key).
			Str("path", r.URL.Path).
			Int("limit", rl.limit).
			Dur("window", rl.window).
			Msg("rate limit exceeded")
		api.Fail(w, r, http.StatusTooManyRequests, msgTooManyAttempts)
		return false
	}
	return true
}

func durationSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	seconds := int(d.Seconds())
	if seconds <= 0 {
		return 1
	}
	return seconds
}
