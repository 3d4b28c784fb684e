package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead covers the text fields and boundaries sent alongside
// an uploaded file.
const multipartOverhead = 1 << 20

// BodyLimit caps the request body at fileLimit plus form overhead. A
// declared Content-Length over the cap is rejected before anything is read;
// otherwise reads past the cap fail while gin parses the form.
func BodyLimit(fileLimit int64) gin.HandlerFunc {
	limit := fileLimit + multipartOverhead
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "request body too large",
				"code":  "PAYLOAD_TOO_LARGE",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
