package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestEnvCredentialsPlainPairs(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "admin, karel")
	t.Setenv("ADMIN_PASSWORD", "tajne, heslo")
	t.Setenv("ADMIN_FALLBACK_ENABLED", "")

	creds := NewEnvCredentials()

	assert.True(t, creds.Verify("admin", "tajne"))
	assert.True(t, creds.Verify("karel", "heslo"))
	assert.True(t, creds.Verify(" admin ", " tajne "))
	assert.False(t, creds.Verify("admin", "heslo"))
	assert.False(t, creds.Verify("nobody", "tajne"))
}

func TestEnvCredentialsBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("velmi-tajne"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", string(hash))

	creds := NewEnvCredentials()

	assert.True(t, creds.Verify("admin", "velmi-tajne"))
	assert.False(t, creds.Verify("admin", "spatne"))
}

func TestEnvCredentialsFallbackPair(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")

	t.Setenv("ADMIN_FALLBACK_ENABLED", "")
	assert.False(t, NewEnvCredentials().Verify("z", "1"))

	t.Setenv("ADMIN_FALLBACK_ENABLED", "1")
	assert.True(t, NewEnvCredentials().Verify("z", "1"))
	assert.True(t, NewEnvCredentials().Verify("Z", "1"))
	assert.False(t, NewEnvCredentials().Verify("z", "2"))
}
