package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service wraps token verification for the route middleware. Tokens are
// issued by the platform's identity service, which shares the signing
// secret; this service never handles login flows.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateAccessToken(employeeID, companyID, department, role string) (token string, expiresAt int64, err error)
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken mints an access token with the claims the attendance
// routes read. Kept for local development and integration tests; production
// tokens come from the identity service.
func (j *JWTService) GenerateAccessToken(employeeID, companyID, department, role string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"employee_id": employeeID,
		"company_id":  companyID,
		"department":  department,
		"role":        role,
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}
