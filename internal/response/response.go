// Package response renders the uniform envelope every endpoint answers
// with: {success, message, data/error, timestamp}.
package response

import (
	"time"

	"github.com/gin-gonic/gin"

	"accesshub/internal/apperrors"
)

type Envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OK writes a success envelope with the given status.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// Fail classifies err and writes the matching failure envelope. The
// wrapped cause of an internal error is only exposed in gin debug mode;
// callers otherwise distinguish failures by status alone.
func Fail(c *gin.Context, err error) {
	appErr := apperrors.From(err)

	detail := ""
	if appErr.Kind == apperrors.KindInternal && appErr.Err != nil && gin.Mode() == gin.DebugMode {
		detail = appErr.Err.Error()
	}

	c.JSON(apperrors.HTTPStatus(appErr.Kind), Envelope{
		Success:   false,
		Message:   appErr.Message,
		Error:     detail,
		Timestamp: time.Now().UTC(),
	})
}

// AbortFail is Fail plus aborting the gin chain, for middleware.
func AbortFail(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
