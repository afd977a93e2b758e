// Package middleware_test provides tests for the gin middleware chain.
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/finsmart/finsmart/internal/interfaces/http/middleware"
)

func ipContext(t *testing.T, remoteAddr, forwardedFor string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ai/health", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	c.Request = req
	return c
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name         string
		remoteAddr   string
		forwardedFor string
		want         string
	}{
		{"no header uses peer address", "10.0.0.7:51234", "", "10.0.0.7"},
		{"single forwarded entry", "10.0.0.7:51234", "203.0.113.9", "203.0.113.9"},
		{"first of multiple entries", "10.0.0.7:51234", "203.0.113.9, 10.0.0.1, 10.0.0.2", "203.0.113.9"},
		{"entries with whitespace", "10.0.0.7:51234", "  203.0.113.9 , 10.0.0.1", "203.0.113.9"},
		{"unknown header falls back", "10.0.0.7:51234", "unknown", "10.0.0.7"},
		{"unknown is case insensitive", "10.0.0.7:51234", "UNKNOWN", "10.0.0.7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := ipContext(t, tc.remoteAddr, tc.forwardedFor)
			assert.Equal(t, tc.want, middleware.ClientIP(c))
		})
	}
}
