package middleware

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/sereci/sirepre/internal/interfaces/http/dto"
)

// BodyLimit caps request bodies at maxBytes. Requests that declare a larger
// Content-Length get 413 before the handler runs; chunked bodies fail with
// *http.MaxBytesError once the handler reads past the cap.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	message := "La solicitud excede el tamaño máximo permitido (" + humanize.IBytes(uint64(maxBytes)) + ")"
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, message, c.GetString(RequestIDKey)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
