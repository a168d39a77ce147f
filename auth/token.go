// Package auth owns JWT claims and token issuance. Verification lives in
// the middlewares package; both sides share the Claims shape defined here.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	jwt.RegisteredClaims
}

// GenerateTokenPair issues the access/refresh pair embedded in login and
// register responses.
func GenerateTokenPair(claims Claims, secret string) (accessToken, refreshToken string, err error) {
	now := time.Now()

	access := claims
	access.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
	}
	accessToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, access).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	refresh := claims
	refresh.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenTTL)),
	}
	refreshToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refresh).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
