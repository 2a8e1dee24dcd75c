package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	nethttp "net/http"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/transport/http/response"
	"github.com/gin-gonic/gin"
)

const (
	IdempotencyKeyCtx  = "idempotency_key"
	IdempotencyHashCtx = "idempotency_hash"
	IdempotencyHeader  = "Idempotency-Key"
	maxIdempotencyKey  = 200
)

// Idempotency reads the Idempotency-Key header and fingerprints the request.
// The fingerprint covers method, path and body, so reusing a key for another
// cart or another payload is detected as a mismatch.
func Idempotency(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			key = c.GetHeader("X-Idempotency-Key")
		}
		if key == "" {
			if required {
				response.RespondError(c, nethttp.StatusBadRequest, "validation", "idempotency key is required")
				c.Abort()
				return
			}
			c.Set(IdempotencyKeyCtx, "")
			c.Set(IdempotencyHashCtx, "")
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKey {
			response.RespondError(c, nethttp.StatusBadRequest, "validation", "idempotency key is too long")
			c.Abort()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(c.Request.Body)
			if err != nil {
				response.RespondError(c, nethttp.StatusBadRequest, "validation", "invalid request body")
				c.Abort()
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		h := sha256.New()
		h.Write([]byte(c.Request.Method + " " + c.Request.URL.Path + "\n"))
		h.Write(body)
		c.Set(IdempotencyKeyCtx, key)
		c.Set(IdempotencyHashCtx, hex.EncodeToString(h.Sum(nil)))
		c.Next()
	}
}
