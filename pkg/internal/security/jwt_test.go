package security

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSecrets(t *testing.T) {
	t.Helper()
	viper.Set("security.access_secret", "test-access-secret")
	viper.Set("security.refresh_secret", "test-refresh-secret")
}

func TestIssueAndParsePair(t *testing.T) {
	setupSecrets(t)

	pair, err := IssuePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AccountID)
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	setupSecrets(t)

	pair, err := IssuePair(7)
	require.NoError(t, err)

	_, err = ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessRejectsGarbage(t *testing.T) {
	setupSecrets(t)

	_, err := ParseAccess("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshPair(t *testing.T) {
	setupSecrets(t)

	pair, err := IssuePair(9)
	require.NoError(t, err)

	renewed, err := RefreshPair(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := ParseAccess(renewed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.AccountID)
}

func TestRefreshPairRejectsAccessToken(t *testing.T) {
	setupSecrets(t)

	pair, err := IssuePair(9)
	require.NoError(t, err)

	_, err = RefreshPair(pair.AccessToken)
	assert.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.True(t, VerifyPassword("correct horse battery staple", hashed))
	assert.False(t, VerifyPassword("wrong password", hashed))
}
