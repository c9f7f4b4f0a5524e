package jwt

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

var (
	ErrInvalidToken           = errors.New("invalid token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)

// Claims is what the attendance API reads from a verified access token.
type Claims struct {
	UserID  string
	IsAdmin bool
}

type Service interface {
	GenerateAccessToken(userID string, isAdmin bool) (token string, expiresAt int64, err error)
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

func (j *JWTService) GenerateAccessToken(userID string, isAdmin bool) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":  userID,
		"is_admin": isAdmin,
		"type":     tokenTypeAccess,
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

// ClaimsFromMap reads the access-token claims set by GenerateAccessToken.
func ClaimsFromMap(m map[string]interface{}) (Claims, error) {
	if tokenType, ok := m["type"].(string); !ok || tokenType != tokenTypeAccess {
		return Claims{}, ErrInvalidToken
	}

	userID, ok := m["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrInvalidToken
	}

	isAdmin, _ := m["is_admin"].(bool)
	return Claims{UserID: userID, IsAdmin: isAdmin}, nil
}
