package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/faizxmak/latilong/internal/domain/user"
)

// Principal is the verified identity attached to a request.
type Principal struct {
	UserID   uint
	PublicID string
	Email    string
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager builds a token manager. TTL defaults to 7 days.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue creates a signed token for the user.
func (m *TokenManager) Issue(u *user.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   m.issuer,
		"sub":   u.PublicID,
		"uid":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the principal it names.
func (m *TokenManager) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	uidFloat, ok := claims["uid"].(float64)
	if !ok || uidFloat <= 0 {
		return nil, fmt.Errorf("token missing user id")
	}

	return &Principal{
		UserID:   uint(uidFloat),
		PublicID: sub,
		Email:    email,
	}, nil
}
