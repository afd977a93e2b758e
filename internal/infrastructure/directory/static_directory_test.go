// Package directory_test provides tests for the static principal directory.
package directory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/internal/infrastructure/directory"
	"github.com/finsmart/finsmart/pkg/constants"
	"github.com/finsmart/finsmart/pkg/errors"
)

func TestStaticDirectory_Authenticate(t *testing.T) {
	dir := directory.NewStaticDirectory(&config.AuthConfig{
		DemoEmail: "demo@finsmart.app",
		DemoPass:  "demo-pass",
	})

	userID, err := dir.Authenticate(context.Background(), "demo@finsmart.app", "demo-pass")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, userID)
}

func TestStaticDirectory_StableUserID(t *testing.T) {
	cfg := &config.AuthConfig{DemoEmail: "demo@finsmart.app", DemoPass: "demo-pass"}

	first, err := directory.NewStaticDirectory(cfg).Authenticate(context.Background(), cfg.DemoEmail, cfg.DemoPass)
	require.NoError(t, err)
	second, err := directory.NewStaticDirectory(cfg).Authenticate(context.Background(), cfg.DemoEmail, cfg.DemoPass)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStaticDirectory_RejectsBadCredentials(t *testing.T) {
	dir := directory.NewStaticDirectory(&config.AuthConfig{
		DemoEmail: "demo@finsmart.app",
		DemoPass:  "demo-pass",
	})

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "demo@finsmart.app", "nope"},
		{"wrong email", "other@finsmart.app", "demo-pass"},
		{"both empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dir.Authenticate(context.Background(), tc.email, tc.password)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, constants.ErrCodeUnauthorized))
		})
	}
}
