package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/infrastructure/audit"
)

// Audit records every request after its response is produced, including
// requests the rate limiter rejected and requests whose handler panicked
// (Recovery runs inside this middleware, so the 500 is already written).
// Submission is fire-and-forget: the sink never blocks or fails the response.
func Audit(sink *audit.Sink) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		event := models.NewAuditEvent(
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
		).WithClientInfo(ClientIP(c), c.Request.UserAgent())

		if actor, ok := CurrentActor(c); ok {
			event.WithActor(actor)
		}

		sink.Record(event)
	}
}
