package utils

import (
	"castbook/src/types"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("talent@example.com", 42, "talent")
	assert.Nil(t, err)
	assert.NotEmpty(t, token)

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	assert.Nil(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "talent@example.com", claims.Email)
	assert.Equal(t, "talent", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	assert.Nil(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword(hash, "s3cret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-password"))
}

func TestParseRate(t *testing.T) {
	d, err := ParseRate(nil)
	assert.Nil(t, err)
	assert.Nil(t, d)

	empty := ""
	d, err = ParseRate(&empty)
	assert.Nil(t, err)
	assert.Nil(t, d)

	valid := "1500.50"
	d, err = ParseRate(&valid)
	assert.Nil(t, err)
	assert.NotNil(t, d)
	assert.Equal(t, "1500.5", d.String())

	bad := "a lot"
	d, err = ParseRate(&bad)
	assert.NotNil(t, err)
	assert.Nil(t, d)
}

func TestParseDateTime(t *testing.T) {
	parsed, err := ParseDateTime("2025-06-15 09:30:45 +00:00")
	assert.Nil(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.June, parsed.Month())
	assert.Equal(t, 30, parsed.Minute())
	assert.Equal(t, 0, parsed.Second())

	_, err = ParseDateTime("June 15, 2025")
	assert.NotNil(t, err)
}
