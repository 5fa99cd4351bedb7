package middleware

import (
	apperrors "booking-service/errors"

	"github.com/gin-gonic/gin"
)

// UserKey holds the caller id resolved by the gateway.
const UserKey = "userID"

// AuthMiddleware trusts the X-User-ID header set by the API gateway after it
// validated the caller's token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(apperrors.ErrUnauthorized.Code, apperrors.ErrUnauthorized)
			return
		}
		c.Set(UserKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString(UserKey)
}
