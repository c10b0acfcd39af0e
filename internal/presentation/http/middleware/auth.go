package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafe-api/internal/domain/session"
	"github.com/sangkips/cafe-api/internal/presentation/http/dto/response"
)

// SessionKey is the gin context key holding the *session.Session
const SessionKey = "session"

// SessionValidator turns a bearer token into a session
type SessionValidator interface {
	ValidateToken(token string) (*session.Session, error)
}

// AuthMiddleware requires a valid bearer token and attaches the session it
// carries to both the gin context and the request context
func AuthMiddleware(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		sess, err := validator.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(SessionKey, sess)
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))

		c.Next()
	}
}

// GetSession returns the session set by AuthMiddleware, or nil
func GetSession(c *gin.Context) *session.Session {
	if v, exists := c.Get(SessionKey); exists {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	if sess, ok := session.FromContext(c.Request.Context()); ok {
		return sess
	}
	return nil
}
