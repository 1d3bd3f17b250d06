package middlewares

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore holds one token bucket per key for a single route group.
type limiterStore struct {
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	visitors  map[string]*visitor
	lastSweep time.Time
}

func newLimiterStore(r rate.Limit, b int) *limiterStore {
	return &limiterStore{rate: r, burst: b, visitors: make(map[string]*visitor)}
}

func (s *limiterStore) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > time.Minute {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, exists := s.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimitMiddleware allows r requests per second with bursts of b for each key.
// Every call gets its own buckets, so limits on different route groups are independent.
func RateLimitMiddleware(r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	store := newLimiterStore(r, b)

	return func(c *gin.Context) {
		limiter := store.get(keyFunc(c), time.Now())

		if !limiter.Allow() {
			if r > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(1/float64(r)))))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down :("})
			return
		}

		c.Next()
	}
}
