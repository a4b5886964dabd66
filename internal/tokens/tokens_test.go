package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/araujodev/zapvitrine/internal/models"
)

func TestSignAccess_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	exp := time.Now().Add(AccessTTL)

	token, err := SignAccess("uid-1", models.RoleAdmin, secret, exp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token, secret)
	require.NoError(t, err)

	sub, err := Subject(claims)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", sub)
	assert.Equal(t, "admin", claims["role"])
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignAccess("uid-1", models.RoleClient, []byte("right"), time.Now().Add(AccessTTL))
	require.NoError(t, err)

	_, err = Parse(token, []byte("wrong"))
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, err := SignAccess("uid-1", models.RoleClient, secret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = Parse(token, secret)
	assert.Error(t, err)
}

func TestSignRefresh_HasRefreshType(t *testing.T) {
	t.Parallel()

	secret := []byte("refresh-secret")
	token, err := SignRefresh("uid-1", secret, time.Now().Add(RefreshTTL))
	require.NoError(t, err)

	claims, err := Parse(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["typ"])
}
