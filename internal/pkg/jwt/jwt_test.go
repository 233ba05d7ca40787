package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifiedContext(t *testing.T, svc Service, token string) context.Context {
	t.Helper()
	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), decoded, nil)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService("secret", "1h")
	employeeID := "emp-1"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", &employeeID, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	ctx := verifiedContext(t, svc, token)

	gotEmployee, err := EmployeeID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", gotEmployee)

	gotUser, err := UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", gotUser)

	_, claims, err := jwtauth.FromContext(ctx)
	require.NoError(t, err)
	assert.True(t, IsAccessToken(claims))
}

func TestEmployeeID_MissingClaim(t *testing.T) {
	svc := NewJWTService("secret", "1h")
	token, _, err := svc.GenerateAccessToken("user-1", nil, nil)
	require.NoError(t, err)

	_, err = EmployeeID(verifiedContext(t, svc, token))
	assert.ErrorIs(t, err, ErrEmployeeRequired)
}

func TestEmployeeID_NoToken(t *testing.T) {
	_, err := EmployeeID(context.Background())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserID_NoToken(t *testing.T) {
	_, err := UserID(context.Background())
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("secret", "soon")
	_, _, err := svc.GenerateAccessToken("user-1", nil, nil)
	assert.Error(t, err)
}

func TestIsAccessToken(t *testing.T) {
	assert.False(t, IsAccessToken(map[string]interface{}{"type": "refresh"}))
	assert.False(t, IsAccessToken(map[string]interface{}{}))
}
