package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	JwtSecret = []byte("unit-test-secret")

	token, err := GenerateJWT("64f1c0ffee0ddba117bada55", "nurse@hospital.test", "medical_staff")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0ddba117bada55", claims.UserID)
	assert.Equal(t, "nurse@hospital.test", claims.Email)
	assert.Equal(t, "medical_staff", claims.UserType)
	require.NotNil(t, claims.ExpiresAt)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	JwtSecret = []byte("secret-one")
	token, err := GenerateJWT("id", "a@b.test", "disposal_staff")
	require.NoError(t, err)

	JwtSecret = []byte("secret-two")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	JwtSecret = []byte("unit-test-secret")
	_, err := ParseJWT("definitely.not.a-token")
	assert.Error(t, err)
}
