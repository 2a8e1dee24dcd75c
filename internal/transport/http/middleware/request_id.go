package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
	UserIDKey       = "user_id"
	UserIDHeader    = "X-User-ID"
)

// RequestID propagates the caller's request id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Actor stores the authenticated user id forwarded by the gateway. Requests
// without one act anonymously.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(UserIDKey, c.GetHeader(UserIDHeader))
		c.Next()
	}
}
