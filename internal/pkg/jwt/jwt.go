package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrEmployeeRequired = errors.New("token is not bound to an employee")
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(userID string, employeeID *string, companyID *string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, employeeID *string, companyID *string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"employee_id": valueOrNil(employeeID),
		"company_id":  valueOrNil(companyID),
		"type":        tokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func valueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// IsAccessToken reports whether the verified claims belong to an access token.
func IsAccessToken(claims map[string]interface{}) bool {
	tokenType, ok := claims["type"].(string)
	return ok && tokenType == tokenTypeAccess
}

// EmployeeID returns the employee bound to the verified token in ctx.
func EmployeeID(ctx context.Context) (string, error) {
	return stringClaim(ctx, "employee_id", ErrEmployeeRequired)
}

// UserID returns the user bound to the verified token in ctx.
func UserID(ctx context.Context) (string, error) {
	return stringClaim(ctx, "user_id", ErrInvalidToken)
}

func stringClaim(ctx context.Context, key string, missing error) (string, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return "", ErrInvalidToken
	}
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", missing
	}
	return value, nil
}
