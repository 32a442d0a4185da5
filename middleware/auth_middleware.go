package middleware

import (
	"net/http"
	"os"
	"strings"

	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kelechi/skylinkbackend/auth"
	"github.com/kelechi/skylinkbackend/models"
	"github.com/kelechi/skylinkbackend/utils"
)

const sessionKey = "session"

// AuthMiddleware validates the bearer token and attaches the resulting
// session to the context. It only authenticates; role checks are done by
// RequireRoles so each route group names its own tier.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := utils.ValidateToken(tokenStr, os.Getenv("JWT_SECRET"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
			return
		}

		c.Set(sessionKey, &auth.Session{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   models.Role(claims.Role),
		})
		c.Next()
	}
}

// RequireRoles gates the route on the guard's decision. Unauthorized and
// Forbidden keep distinct statuses but share the same generic body.
func RequireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.Authorize(SessionFrom(c), allowed...); err != nil {
			status := http.StatusForbidden
			if errors.Is(err, auth.ErrUnauthorized) {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session set by AuthMiddleware, or nil for
// anonymous callers.
func SessionFrom(c *gin.Context) *auth.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, ok := v.(*auth.Session)
	if !ok {
		return nil
	}
	return sess
}
