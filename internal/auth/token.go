package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken marks a token that could not be parsed or verified
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken marks a token whose lifetime has passed
	ErrExpiredToken = errors.New("expired token")
)

// TokenService issues and verifies HMAC-SHA256 signed JWT access tokens
type TokenService struct {
	signingKey []byte
	lifetime   time.Duration
}

type tokenClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// NewTokenService creates a new JWT token service.
// The signing secret has to be at least 32 characters long.
func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	return &TokenService{
		signingKey: []byte(secret),
		lifetime:   lifetime,
	}, nil
}

// Generate creates a signed access token for the given user ID
func (service *TokenService) Generate(userID int64) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.lifetime)),
			ID:        uuid.New().String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.signingKey)
}

// Verify verifies a signed access token and returns the user ID it was issued for
func (service *TokenService) Verify(raw string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		raw,
		&tokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return service.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
