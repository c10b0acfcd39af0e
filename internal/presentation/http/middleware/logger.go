package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDKey is the gin context key holding the request id
	RequestIDKey = "request_id"
	// RequestIDHeader carries the request id in and out
	RequestIDHeader = "X-Request-ID"
)

// LoggerMiddleware logs one line per request, prefixed with its request id
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		who := "-"
		if sess := GetSession(c); sess != nil {
			who = sess.Subject()
		}

		prefix := shortID(requestID)
		log.Printf("[%s] %s | %d | %v | %s | %s | %s",
			prefix,
			c.Request.Method,
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			who,
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", prefix, e.Err)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
