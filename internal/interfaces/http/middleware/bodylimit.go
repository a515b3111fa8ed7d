package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plantstore/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects request bodies larger than maxBytes. Streaming
// bodies without a Content-Length are wrapped so oversized payloads
// fail mid-read instead of being buffered.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooBig, "Request body exceeds maximum allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
