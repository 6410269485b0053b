package middleware

import (
	"go-attend/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID menghormati X-Request-ID dari gateway kalau ada, selain itu
// generate sendiri. ID disimpan di gin context, request context, dan header
// respons sekaligus.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(
			contextutil.WithRequestID(c.Request.Context(), rid),
		)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
