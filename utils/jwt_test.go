package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routed/config"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	token, err := GenerateSessionToken("user-1", "sess-9", time.Minute)
	require.NoError(t, err)

	userID, sessionID, err := ExtractSessionFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "sess-9", sessionID)
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "first-secret"
	token, err := GenerateSessionToken("user-1", "sess-9", time.Minute)
	require.NoError(t, err)

	// Rotating the configured secret invalidates outstanding grants.
	config.AppConfig.JWTSecret = "second-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	_, _, err = ExtractSessionFromToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	token, err := GenerateSessionToken("user-1", "sess-9", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractSessionFromToken(token)
	assert.Error(t, err)
}
