package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"roomrent/constants"
	"roomrent/response"
	"roomrent/services"
)

const userIDKey = "userID"

// AuthMiddleware rejects requests without a valid bearer token and stores
// the user id in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := bearerUser(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuth stores the user id when a valid token is present and lets
// anonymous requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := bearerUser(c); err == nil {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

func bearerUser(c *gin.Context) (uint, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, errMissingToken
	}
	return services.GetUserIDFromToken(strings.TrimPrefix(authHeader, "Bearer "))
}

// UserID returns the authenticated user, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// ViewerID is the authenticated user or the anonymous marker.
func ViewerID(c *gin.Context) int64 {
	if id, ok := UserID(c); ok {
		return int64(id)
	}
	return constants.AnonymousViewerID
}
