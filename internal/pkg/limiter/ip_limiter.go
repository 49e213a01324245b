/*
Package limiter provides IP-address based request rate limiting.

It uses the token bucket algorithm (rate.Limiter) to bound the request
frequency of each client IP, and runs a background sweep that drops limiters
whose buckets refilled completely, so the map does not grow without bound.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"parlor/internal/pkg/errs"
	"parlor/internal/pkg/logx"
	"parlor/internal/pkg/resp"
)

// sweepInterval is how often idle limiters are removed from the map.
const sweepInterval = 3 * time.Minute

// IPRateLimiter holds one token bucket per client IP address.
type IPRateLimiter struct {
	// mu protects concurrent access to the buckets map.
	mu sync.RWMutex

	// buckets maps a client IP address to its *rate.Limiter.
	buckets map[string]*rate.Limiter

	// r is the sustained rate, in events per second.
	r rate.Limit

	// b is the burst size (token bucket capacity).
	b int
}

// NewIPRateLimiter creates an IPRateLimiter with rate r and burst b and
// starts the background sweep goroutine.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	l := &IPRateLimiter{
		buckets: make(map[string]*rate.Limiter),
		r:       r,
		b:       b,
	}

	go l.sweep()

	return l
}

// GetLimiter returns the limiter for ip, creating one on first sight.
// Creation is double-checked so concurrent first requests from the same
// address share a single bucket.
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.RLock()
	bucket, ok := l.buckets[ip]
	l.mu.RUnlock()

	if !ok {
		l.mu.Lock()
		bucket, ok = l.buckets[ip]
		if !ok {
			bucket = rate.NewLimiter(l.r, l.b)
			l.buckets[ip] = bucket
		}
		l.mu.Unlock()
	}

	return bucket
}

// sweep periodically removes buckets that are full again, meaning the IP has
// been idle long enough to be forgotten.
func (l *IPRateLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		removed := 0
		for ip, bucket := range l.buckets {
			if bucket.TokensAt(time.Now()) >= float64(bucket.Burst()) {
				delete(l.buckets, ip)
				removed++
			}
		}
		remaining := len(l.buckets)
		l.mu.Unlock()

		logx.Info("Rate limiter sweep finished.", "removed", removed, "remaining", remaining)
	}
}

// ClientIP extracts the bare IP address from an http.Request remote address.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if ip == "" {
		ip = "unknown_ip"
	}

	return ip
}

// Middleware returns an HTTP middleware that rejects requests exceeding the
// per-IP rate with a 429 response.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.GetLimiter(ClientIP(r)).Allow() {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}
