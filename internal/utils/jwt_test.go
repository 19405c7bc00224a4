package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	raw, err := NewAccessToken("test-secret", userID, "asha@example.com", 60)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ParseAccessToken("test-secret", raw)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.Subject)
	assert.Equal(t, "asha@example.com", claims.Email)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	raw, err := NewAccessToken("test-secret", primitive.NewObjectID(), "asha@example.com", 60)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", raw)
	assert.Error(t, err)
}

func TestParseAccessToken_Expired(t *testing.T) {
	raw, err := NewAccessToken("test-secret", primitive.NewObjectID(), "asha@example.com", -1)
	require.NoError(t, err)

	_, err = ParseAccessToken("test-secret", raw)
	assert.Error(t, err)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	_, err := ParseAccessToken("test-secret", "not.a.token")
	assert.Error(t, err)
}
