package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finsmart/finsmart/internal/application/dto"
	"github.com/finsmart/finsmart/pkg/constants"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

// extractBearer extracts the token from the Authorization header.
func extractBearer(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Principal resolves the authenticated principal from a bearer token, if one
// is present and valid, and stashes it in the request context. It never
// aborts: anonymous requests proceed with no principal, so the audit trail
// can record unauthenticated traffic with an absent actor.
func Principal(secret string, log logger.Logger) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}

	return func(c *gin.Context) {
		tokenStr := extractBearer(c.Request.Header.Get("Authorization"))
		if tokenStr == "" {
			c.Next()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, keyFunc)
		if err != nil || !token.Valid {
			log.Warn(c.Request.Context(), "rejected invalid bearer token",
				logger.String("client_ip", ClientIP(c)),
			)
			c.Next()
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			c.Next()
			return
		}
		if _, err := uuid.Parse(sub); err != nil {
			c.Next()
			return
		}

		c.Set(string(constants.ContextKeyUserID), sub)
		if email, ok := claims["email"].(string); ok {
			c.Set(string(constants.ContextKeyUserEmail), email)
		}
		c.Next()
	}
}

// RequireUser aborts with 401 unless a principal was resolved.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			dto.AbortWithError(c, errors.ErrUnauthorized("authentication required"))
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated principal's id.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	sub := c.GetString(string(constants.ContextKeyUserID))
	if sub == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// CurrentActor returns the audit actor string for the request: the principal's
// email when known, else its id. ok is false for anonymous requests.
func CurrentActor(c *gin.Context) (string, bool) {
	if email := c.GetString(string(constants.ContextKeyUserEmail)); email != "" {
		return email, true
	}
	if sub := c.GetString(string(constants.ContextKeyUserID)); sub != "" {
		return sub, true
	}
	return "", false
}
