package ratelimit

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per client key, created on first use and
// dropped by Sweep once the client has been idle for IdleTimeout.
type ClientLimiter struct {
	buckets  map[string]*bucket
	mu       sync.Mutex
	defaults RateLimitConfig
	now      func() time.Time
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	IdleTimeout       time.Duration
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 20,
		BurstSize:         40,
		IdleTimeout:       10 * time.Minute,
	}
}

func NewClientLimiter(config RateLimitConfig) *ClientLimiter {
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = DefaultConfig().IdleTimeout
	}
	return &ClientLimiter{
		buckets:  make(map[string]*bucket),
		defaults: config,
		now:      time.Now,
	}
}

func (p *ClientLimiter) GetLimiter(client string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, exists := p.buckets[client]
	if !exists {
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(p.defaults.RequestsPerSecond), p.defaults.BurstSize)}
		p.buckets[client] = b
	}
	b.lastSeen = p.now()
	return b.limiter
}

func (p *ClientLimiter) Allow(client string) bool {
	return p.GetLimiter(client).Allow()
}

// Len is the number of clients currently tracked.
func (p *ClientLimiter) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets)
}

// Sweep drops buckets idle for longer than IdleTimeout and returns how many
// were dropped. An idle bucket has refilled, so dropping it changes nothing for
// the client.
func (p *ClientLimiter) Sweep() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := p.now().Add(-p.defaults.IdleTimeout)
	dropped := 0
	for client, b := range p.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(p.buckets, client)
			dropped++
		}
	}
	return dropped
}

// Run sweeps idle buckets every interval until ctx is done.
func (p *ClientLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Sweep()
		}
	}
}

// Middleware rejects requests over the client's budget with 429. Clients are
// keyed by echo's RealIP, so the server must set an IPExtractor that does not
// trust client-supplied forwarding headers.
func (p *ClientLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !p.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:   "rate_limited",
					Message: "too many requests",
					Code:    http.StatusTooManyRequests,
				})
			}
			return next(c)
		}
	}
}
