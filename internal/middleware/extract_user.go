package middleware

import (
	"net/http"

	"go-attend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ExtractUserID memastikan user_id hasil AuthMiddleware ada dan bertipe
// string sebelum handler jalan, lalu menyimpannya sebagai user_id_validated.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("user_id")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User tidak terautentikasi", nil)
			c.Abort()
			return
		}

		userID, ok := raw.(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_USER_ID", "Format user_id tidak valid", nil)
			c.Abort()
			return
		}

		c.Set("user_id_validated", userID)
		c.Next()
	}
}
