package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// senderLimiter keeps one token-bucket limiter per client, evicting
// entries that have been idle long enough to refill completely.
type senderLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newSenderLimiter(r rate.Limit, burst int) *senderLimiter {
	sl := &senderLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     r,
		burst:    burst,
	}
	go sl.evictLoop()
	return sl
}

func (sl *senderLimiter) allow(key string) bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	cl, ok := sl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(sl.rate, sl.burst)}
		sl.limiters[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

func (sl *senderLimiter) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		sl.mu.Lock()
		for key, cl := range sl.limiters {
			if cl.lastSeen.Before(cutoff) {
				delete(sl.limiters, key)
			}
		}
		sl.mu.Unlock()
	}
}

// RateLimit rejects clients exceeding r requests/sec (with the given
// burst) with 429 Too Many Requests. Clients are keyed by real IP.
func RateLimit(r rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := newSenderLimiter(r, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			key := req.RemoteAddr
			// chi's RealIP middleware rewrites RemoteAddr from
			// X-Real-Ip / X-Forwarded-For when present.
			if !limiter.allow(key) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
