package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/unslop/config"
	"github.com/use-agent/unslop/models"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL   = time.Hour
	limiterSweepTick = 5 * time.Minute
)

// limiterSet holds one token bucket per caller identity.
type limiterSet struct {
	mu    sync.Mutex
	rps   rate.Limit
	burst int
	byID  map[string]*trackedLimiter
}

type trackedLimiter struct {
	*rate.Limiter
	lastSeen time.Time
}

func newLimiterSet(rps float64, burst int) *limiterSet {
	return &limiterSet{
		rps:   rate.Limit(rps),
		burst: max(burst, 1),
		byID:  make(map[string]*trackedLimiter),
	}
}

func (s *limiterSet) allow(id string, now time.Time) bool {
	s.mu.Lock()
	l, ok := s.byID[id]
	if !ok {
		l = &trackedLimiter{Limiter: rate.NewLimiter(s.rps, s.burst)}
		s.byID[id] = l
	}
	l.lastSeen = now
	s.mu.Unlock()
	return l.AllowN(now, 1)
}

// sweep drops limiters idle since before cutoff and returns how many remain.
func (s *limiterSet) sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.byID {
		if l.lastSeen.Before(cutoff) {
			delete(s.byID, id)
		}
	}
	return len(s.byID)
}

// RateLimit limits each caller to cfg.RequestsPerSecond with bursts of
// cfg.Burst. The caller is the API key set by Auth, or the client IP when
// auth is off. Idle limiters are swept every few minutes. A non-positive
// rate disables limiting.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	set := newLimiterSet(cfg.RequestsPerSecond, cfg.Burst)

	go func() {
		for now := range time.Tick(limiterSweepTick) {
			set.sweep(now.Add(-limiterIdleTTL))
		}
	}()

	return func(c *gin.Context) {
		id := c.GetString(identityKey)
		if id == "" {
			id = c.ClientIP()
		}
		if !set.allow(id, time.Now()) {
			c.Header("Retry-After", "1")
			abort(c, http.StatusTooManyRequests, models.ErrCodeRateLimited, "rate limit exceeded, slow down")
			return
		}
		c.Next()
	}
}

// BodyLimit caps request bodies at n bytes. Binding a larger body fails
// with an INVALID_INPUT error.
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
