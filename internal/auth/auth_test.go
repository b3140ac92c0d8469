package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/relivo/orgportal/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := hasher.Verify("s3cret-password", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashSalted(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	h1, err := hasher.Hash("same-password")
	require.NoError(t, err)
	h2, err := hasher.Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestPasswordVerifyMalformedHash(t *testing.T) {
	hasher := auth.NewPasswordHasher()

	_, err := hasher.Verify("anything", "not-a-phc-string")
	assert.Error(t, err)

	_, err = hasher.Verify("anything", "")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour)
	orgID := uuid.New()

	token, err := tm.Generate("org@example.com", orgID)
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "org@example.com", claims.Subject)
	assert.Equal(t, orgID.String(), claims.OrgID)
	assert.Equal(t, auth.RoleOrganization, claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", time.Hour)
	other := auth.NewTokenManager("other_secret", time.Hour)

	token, err := tm.Generate("org@example.com", uuid.New())
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := auth.NewTokenManager("test_secret", -time.Minute)

	token, err := tm.Generate("org@example.com", uuid.New())
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}
