package httpapi

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// clientLimiter keeps one token bucket per client address. Buckets that sat
// idle for a sweep interval and have refilled are dropped.
type clientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*clientBucket
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(limit rate.Limit, burst int) *clientLimiter {
	return &clientLimiter{
		limit:   limit,
		burst:   burst,
		clients: make(map[string]*clientBucket),
	}
}

func (c *clientLimiter) allow(client string, now time.Time) bool {
	c.mu.Lock()
	b, ok := c.clients[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.clients[client] = b
	}
	b.lastSeen = now
	c.mu.Unlock()
	return b.limiter.AllowN(now, 1)
}

// sweep drops full buckets not used since before now-idle and returns how
// many remain
func (c *clientLimiter) sweep(now time.Time, idle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for client, b := range c.clients {
		if now.Sub(b.lastSeen) > idle && b.limiter.TokensAt(now) >= float64(c.burst) {
			delete(c.clients, client)
		}
	}
	return len(c.clients)
}

// run sweeps idle buckets every interval until ctx is done
func (c *clientLimiter) run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			c.sweep(now, interval)
		}
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// limit rejects requests over the client's write budget with 429
func (s *Server) limit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(clientAddr(r), time.Now()) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// logRequests tags each request with an ID and logs its outcome
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		log := s.log.WithRequest(r.Method, r.URL.Path, id)
		attrs := []any{"status", rec.status, "duration", time.Since(start)}
		if rec.status >= http.StatusInternalServerError {
			log.ErrorContext(r.Context(), "request failed", attrs...)
			return
		}
		log.InfoContext(r.Context(), "request", attrs...)
	})
}
