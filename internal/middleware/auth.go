package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/friends_api/internal/resources"
	"github.com/mroshb/friends_api/internal/security"
	"github.com/mroshb/friends_api/pkg/errors"
)

const userIDKey = "user_id"

// AuthMiddleware requires a valid bearer token and stores its user id.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			Abort(c, errors.New(errors.ErrCodeUnauthorized, "missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			Abort(c, errors.New(errors.ErrCodeUnauthorized, "invalid authorization header format"))
			return
		}

		claims, err := security.ValidateJWT(parts[1], secret)
		if err != nil {
			Abort(c, errors.New(errors.ErrCodeUnauthorized, "invalid or expired token"))
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id, or 0 outside AuthMiddleware.
func GetUserID(c *gin.Context) uint {
	id, ok := c.Get(userIDKey)
	if !ok {
		return 0
	}
	userID, _ := id.(uint)
	return userID
}

// Abort renders err as an error document and stops the chain.
func Abort(c *gin.Context, err error) {
	status, doc := resources.Error(errors.As(err))
	c.AbortWithStatusJSON(status, doc)
}
