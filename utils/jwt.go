package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrMissingCredential = errors.New("missing token")
	ErrExpiredCredential = errors.New("token has expired")
	ErrInvalidCredential = errors.New("invalid token")
)

// JWTClaim represents JWT claims
type JWTClaim struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies admin tokens with a server-held secret
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// GenerateJWT generates a JWT token for the admin
func (m *TokenManager) GenerateJWT(adminID string) (string, error) {
	now := time.Now()
	claims := &JWTClaim{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates JWT token and returns claims
func (m *TokenManager) ValidateToken(signedToken string) (*JWTClaim, error) {
	if signedToken == "" {
		return nil, ErrMissingCredential
	}
	token, err := jwt.ParseWithClaims(
		signedToken,
		&JWTClaim{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return m.secret, nil
		},
	)
	if err != nil {
		// Claims are checked before the signature, so a forged expired token
		// carries both flags.
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrExpiredCredential
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(*JWTClaim)
	if !ok || !token.Valid || claims.AdminID == "" {
		return nil, ErrInvalidCredential
	}
	return claims, nil
}
