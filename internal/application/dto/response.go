// Package dto defines the request/response shapes of the HTTP API and the
// mapping from application errors to the response envelope.
package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finsmart/finsmart/pkg/errors"
)

// ErrorBody is the structured error response. The same shape is used by the
// rate limiter's 429, validation failures and upstream outages.
type ErrorBody struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Path      string            `json:"path"`
	Code      string            `json:"code,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// SendError renders err as its structured body with the mapped HTTP status.
func SendError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	c.JSON(appErr.Status, ErrorBody{
		Timestamp: time.Now().UTC(),
		Status:    appErr.Status,
		Error:     statusText(appErr.Status),
		Message:   appErr.Message,
		Path:      c.Request.URL.Path,
		Code:      string(appErr.Code),
		Details:   appErr.Details,
	})
}

// AbortWithError renders err and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	SendError(c, err)
	c.Abort()
}

func statusText(status int) string {
	switch status {
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 429:
		return "Too Many Requests"
	case 503:
		return "Service Unavailable"
	default:
		return "Internal Server Error"
	}
}
