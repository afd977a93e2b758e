package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finsmart/finsmart/internal/application/dto"
	"github.com/finsmart/finsmart/internal/infrastructure/monitoring"
	"github.com/finsmart/finsmart/internal/infrastructure/ratelimit"
	"github.com/finsmart/finsmart/pkg/constants"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

// loginPath is the only endpoint in the strict login class.
const loginPath = "/api/v1/auth/login"

// classify maps a request path to its rate-limit endpoint class.
func classify(path string) constants.EndpointClass {
	if path == loginPath {
		return constants.EndpointClassLogin
	}
	return constants.EndpointClassDefault
}

// RateLimit admits or rejects each request against the caller's token bucket.
// Rejection is immediate with the structured 429 body; there is no queueing.
func RateLimit(registry *ratelimit.Registry, enabled bool, log logger.Logger, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		clientID := ClientIP(c)
		class := classify(c.Request.URL.Path)
		rule := registry.Rule(class)

		if !registry.Admit(clientID, class) {
			metrics.RateLimitRejections.WithLabelValues(string(class)).Inc()
			log.Warn(c.Request.Context(), "rate limit exceeded",
				logger.String("client_ip", clientID),
				logger.String("class", string(class)),
				logger.Int64("limit", rule.Capacity),
			)
			c.Header(constants.HeaderRateLimitLimit, strconv.FormatInt(rule.Capacity, 10))
			c.Header(constants.HeaderRateLimitRemaining, "0")
			dto.AbortWithError(c, errors.ErrRateLimited())
			return
		}

		c.Header(constants.HeaderRateLimitLimit, strconv.FormatInt(rule.Capacity, 10))
		c.Header(constants.HeaderRateLimitRemaining, strconv.FormatInt(registry.Remaining(clientID, class), 10))
		c.Next()
	}
}
