package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("emp-1", "co-1", "Engineering", "manager")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "co-1", claims["company_id"])
	assert.Equal(t, "Engineering", claims["department"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("emp-1", "co-1", "Engineering", "employee")
	assert.Error(t, err)
}
