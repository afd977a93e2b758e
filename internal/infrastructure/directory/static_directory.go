// Package directory provides the principal directory used by the login
// endpoint. The core ships with a single configured demo principal; a real
// deployment swaps in a directory backed by the identity service.
package directory

import (
	"context"
	"crypto/subtle"

	"github.com/google/uuid"

	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/internal/domain/service"
	"github.com/finsmart/finsmart/pkg/errors"
)

// StaticDirectory authenticates exactly one configured principal.
type StaticDirectory struct {
	email    string
	password string
	userID   uuid.UUID
}

// NewStaticDirectory builds the directory from config. The principal's id is
// derived from its email so it is stable across restarts.
func NewStaticDirectory(cfg *config.AuthConfig) service.UserDirectory {
	return &StaticDirectory{
		email:    cfg.DemoEmail,
		password: cfg.DemoPass,
		userID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(cfg.DemoEmail)),
	}
}

// Authenticate verifies the credentials in constant time.
func (d *StaticDirectory) Authenticate(_ context.Context, email, password string) (uuid.UUID, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(d.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(d.password)) == 1
	if !emailOK || !passOK {
		return uuid.Nil, errors.ErrUnauthorized("invalid credentials")
	}
	return d.userID, nil
}
