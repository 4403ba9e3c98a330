package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luisherrera/shopdesk-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "shopdesk",
		ExpirationMinutes: 5,
	}
}

func TestIssueAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()

	raw, err := IssueAccessToken(cfg, "user-1", "Maribel")
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Maribel", claims.Name)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	raw, err := IssueAccessToken(cfg, "user-1", "Maribel")
	require.NoError(t, err)

	other := cfg
	other.Secret = "different"
	_, err = ParseAccessToken(other, raw)
	assert.Error(t, err)
}

func TestParseAccessTokenWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	raw, err := IssueAccessToken(cfg, "user-1", "Maribel")
	require.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = ParseAccessToken(other, raw)
	assert.Error(t, err)
}

func TestParseAccessTokenRequiresSecret(t *testing.T) {
	_, err := ParseAccessToken(config.JWTConfig{}, "whatever")
	assert.Error(t, err)
}
