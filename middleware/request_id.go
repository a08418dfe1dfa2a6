package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shruti0731/MiniProject2/pkg/logger"
)

const (
	requestIDKey = "request_id"
	sessionIDKey = "session_id"
)

// RequestID middleware generates a unique request ID for each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check if request ID already exists in header
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Header("X-Request-ID", requestID)
		c.Set(requestIDKey, requestID)

		// Add to request context for logger
		ctx := logger.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SessionID copies the :id route parameter into the request context so every
// log line of a session route carries it
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.Param("id"); id != "" {
			c.Set(sessionIDKey, id)
			ctx := logger.WithValue(c.Request.Context(), logger.SessionIDKey, id)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// GetRequestID gets the request ID from gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// GetSessionID gets the session ID set by SessionID
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
