package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Reset tokens are short-lived and carry a purpose claim so they cannot be
// replayed as login tokens.
const (
	PurposeAccess        = "access"
	PurposePasswordReset = "password_reset"

	ResetTokenExpiry = 15 * time.Minute
)

// TokenManager signs and validates HS256 tokens. The secret is injected at
// construction instead of read from the environment on every call.
type TokenManager struct {
	secret []byte
	issuer string
	expiry time.Duration
}

func NewTokenManager(secret, issuer string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
	}
}

func (m *TokenManager) GenerateToken(userID uint, username, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      username,
		"user_id":  userID,
		"username": username,
		"role":     role,
		"purpose":  PurposeAccess,
		"exp":      now.Add(m.expiry).Unix(),
		"iat":      now.Unix(),
		"iss":      m.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) GenerateResetToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     email,
		"purpose": PurposePasswordReset,
		"exp":     now.Add(ResetTokenExpiry).Unix(),
		"iat":     now.Unix(),
		"iss":     m.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
