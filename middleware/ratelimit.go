package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"social-media-agent/utils"
)

// RunLimiter throttles "run now" requests per client IP. Every run costs one
// generation request and one email.
type RunLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	perMinute int
}

func NewRunLimiter(perMinute int) *RunLimiter {
	return &RunLimiter{
		limiters:  make(map[string]*rate.Limiter),
		perMinute: perMinute,
	}
}

func (l *RunLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute)
		l.limiters[key] = lim
	}
	return lim
}

// Middleware is a no-op when perMinute is not positive.
func (l *RunLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.perMinute <= 0 {
			c.Next()
			return
		}

		if !l.limiter(c.ClientIP()).Allow() {
			c.Header("X-RateLimit-Limit", strconv.Itoa(l.perMinute))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "60")
			utils.RespondWithError(c, http.StatusTooManyRequests,
				"rate_limit_exceeded",
				"Too many runs. Please try again later.",
				gin.H{"limit_per_minute": l.perMinute})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.perMinute))
		c.Next()
	}
}
