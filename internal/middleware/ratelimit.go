package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimit keeps one token bucket per client IP. Buckets idle for ten
// minutes are dropped on the next request. rps <= 0 disables the limit.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if burst < 1 {
		burst = 1
	}
	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
		lastGC   = time.Now()
	)
	get := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		now := time.Now()
		if now.Sub(lastGC) > time.Minute {
			for k, v := range visitors {
				if now.Sub(v.seen) > 10*time.Minute {
					delete(visitors, k)
				}
			}
			lastGC = now
		}
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{lim: rate.NewLimiter(rate.Limit(rps), burst)}
			visitors[ip] = v
		}
		v.seen = now
		return v.lim
	}

	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !get(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the peer address. Forwarding headers are only honoured when the
// router puts chi's RealIP in front, which rewrites RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
