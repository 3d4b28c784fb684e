package middleware

import (
	"strings"

	"artist-site/internal/api/respond"
	"artist-site/internal/apperr"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts an HS256 bearer token signed with secret and puts
// user_id and role on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if len(key) == 0 {
			respond.Error(c, apperr.Internal("JWT secret not configured", nil))
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respond.Error(c, apperr.Unauthorized("authorization header missing"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			respond.Error(c, apperr.Unauthorized("bearer token malformed"))
			return
		}

		userID, role, err := service.ParseToken(key, tokenString)
		if err != nil {
			respond.Error(c, err)
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			respond.Error(c, apperr.Unauthorized("role not found in token"))
			return
		}

		if value != role {
			respond.Error(c, apperr.Forbidden("access denied"))
			return
		}

		c.Next()
	}
}
