// Package auth issues and validates wallet session tokens. Proving ownership
// of the wallet key itself (signature checks, on-chain identity) is handled
// by the edge in front of this service.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 24 * time.Hour

// GenerateToken signs a session token carrying the wallet address.
func GenerateToken(secret []byte, wallet string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"wallet": wallet,
		"exp":    now.Add(tokenTTL).Unix(),
		"iat":    now.Unix(),
		"nbf":    now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates the token and returns the wallet it was issued for.
func ParseToken(secret []byte, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < now {
		return "", ErrInvalidToken
	}
	if nbf, ok := claims["nbf"].(float64); ok && int64(nbf) > now {
		return "", ErrInvalidToken
	}

	wallet, ok := claims["wallet"].(string)
	if !ok || wallet == "" {
		return "", ErrInvalidToken
	}
	return wallet, nil
}
