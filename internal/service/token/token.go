package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Skotchmaster/auth_service/internal/apperr"
)

// DefaultTTL is the token validity window. Tokens cannot be revoked or
// refreshed; they simply run out.
const DefaultTTL = 24 * time.Hour

// Service issues and verifies HS256-signed identity tokens. Verification is a
// pure local check, so it is safe to run inline on the request path.
type Service struct {
	Secret []byte
	TTL    time.Duration
}

func New(secret []byte) *Service {
	return &Service{Secret: secret, TTL: DefaultTTL}
}

// Issue signs a claim binding the user id to an expiry TTL from now.
func (s *Service) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

// Verify checks signature and expiry and returns the subject user id.
// Expired and otherwise-invalid tokens are distinguishable to callers through
// the error taxonomy, though the HTTP boundary collapses both to 401.
func (s *Service) Verify(raw string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperr.ErrExpiredToken
		}
		return 0, apperr.ErrInvalidToken
	}
	if !t.Valid {
		return 0, apperr.ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperr.ErrInvalidToken
	}
	return uint(id), nil
}
