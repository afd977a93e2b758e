// Package middleware contains the gin middleware chain of the core service:
// audit capture, rate-limit admission, and principal resolution.
package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finsmart/finsmart/pkg/constants"
)

// ClientIP resolves the client identity for rate limiting and audit: the
// first X-Forwarded-For entry when present and meaningful, otherwise the
// transport-level peer address. A literal "unknown" header is ignored.
func ClientIP(c *gin.Context) string {
	header := c.Request.Header.Get(constants.HeaderForwardedFor)
	if header != "" && !strings.EqualFold(header, "unknown") {
		first := strings.TrimSpace(strings.Split(header, ",")[0])
		if first != "" && !strings.EqualFold(first, "unknown") {
			return first
		}
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
