package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidLinkToken covers expired, tampered or otherwise unusable
// assignment link tokens.
var ErrInvalidLinkToken = errors.New("invalid assignment link token")

// GenerateSecureToken creates a cryptographically secure random token.
func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

type assignmentClaims struct {
	AssignmentID string `json:"asg"`
	jwt.RegisteredClaims
}

// SignAssignmentToken issues the signed token embedded in a candidate's test
// link. The token only names the assignment; availability is still checked
// against the assignment's window on every redeem.
func SignAssignmentToken(secret, assignmentPublicID string, ttl time.Duration, now time.Time) (string, error) {
	claims := assignmentClaims{
		AssignmentID: assignmentPublicID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAssignmentToken validates a link token and returns the assignment
// public ID it was issued for.
func ParseAssignmentToken(secret, tokenString string) (string, error) {
	claims := &assignmentClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid || claims.AssignmentID == "" {
		return "", ErrInvalidLinkToken
	}
	return claims.AssignmentID, nil
}
