package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyedLimiter menyimpan satu token bucket per key (IP atau user id).
// Entri tidak pernah di-evict; jumlah key dibatasi populasi klien aktif.
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newKeyedLimiter(limit rate.Limit, burst int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (k *keyedLimiter) allow(key string) bool {
	k.mu.Lock()
	l, ok := k.limiters[key]
	if !ok {
		l = rate.NewLimiter(k.limit, k.burst)
		k.limiters[key] = l
	}
	k.mu.Unlock()
	return l.Allow()
}

func RateLimitByIP(limit rate.Limit, burst int) gin.HandlerFunc {
	limiter := newKeyedLimiter(limit, burst)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests from this IP"})
			return
		}
		c.Next()
	}
}

func RateLimitByUser(limit rate.Limit, burst int) gin.HandlerFunc {
	limiter := newKeyedLimiter(limit, burst)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			// Belum terautentikasi, serahkan ke limiter IP di depan.
			c.Next()
			return
		}
		if !limiter.allow(userID) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests from this user"})
			return
		}
		c.Next()
	}
}
