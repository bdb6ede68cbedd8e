package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Secret:   "test-secret",
		Issuer:   "kombucha-console",
		Audience: "kombucha-operators",
		TTL:      time.Hour,
	}
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	signed, err := m.Generate(42, "ana@example.com")
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "ana@example.com", claims.Email)
	require.NotEmpty(t, claims.ID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m, err := NewManager(testConfig())
	require.NoError(t, err)

	other := testConfig()
	other.Secret = "different-secret"
	m2, err := NewManager(other)
	require.NoError(t, err)

	signed, err := m.Generate(1, "ana@example.com")
	require.NoError(t, err)

	_, err = m2.Verify(signed)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.TTL = -time.Minute
	m, err := NewManager(cfg)
	require.NoError(t, err)

	signed, err := m.Generate(1, "ana@example.com")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	require.Error(t, err)
}

func TestNewManagerRequiresSecret(t *testing.T) {
	_, err := NewManager(Config{})
	require.Error(t, err)
}
