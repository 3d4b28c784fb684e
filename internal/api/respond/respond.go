// Package respond writes apperr errors as JSON error bodies.
package respond

import (
	"errors"
	"net/http"

	"artist-site/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerKey is the gin context key holding the request scoped *zap.Logger.
const LoggerKey = "logger"

// Logger returns the request logger set by the logging middleware, or a
// no-op logger.
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(LoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// Error maps err onto its HTTP status and writes {"error", "details"}.
// Unknown errors become a 500 and are logged; their text is not exposed.
func Error(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal("internal server error", err)
	}

	status := ae.HTTPStatus()
	if status >= http.StatusInternalServerError {
		Logger(c).Error("request failed",
			zap.String("code", string(ae.Code)),
			zap.Error(err),
		)
	}

	body := gin.H{"error": ae.Message, "code": ae.Code}
	if ae.Details != nil {
		body["details"] = ae.Details
	}
	c.AbortWithStatusJSON(status, body)
}

// BadRequest reports a body that could not be bound at all.
func BadRequest(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large", "code": "PAYLOAD_TOO_LARGE"})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}

// Message writes {"message": msg} with status.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}
