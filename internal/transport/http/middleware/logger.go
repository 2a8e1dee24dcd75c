package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func Logger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"route":      c.FullPath(),
			"ip":         c.ClientIP(),
			"latency":    time.Since(start).String(),
			"error":      c.Errors.ByType(gin.ErrorTypePrivate).String(),
			"request_id": c.GetString(RequestIDKey),
			"user_id":    c.GetString(UserIDKey),
		})
		if key := c.GetString(IdempotencyKeyCtx); key != "" {
			entry = entry.WithField("idempotency_key", key)
		}

		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
			return
		}
		if c.Writer.Status() >= 400 {
			entry.Warn("request client error")
			return
		}
		entry.Info("request handled")
	}
}
