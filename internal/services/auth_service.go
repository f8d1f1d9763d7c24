// File: internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassword = errors.New("invalid password")
var ErrInvalidToken = errors.New("invalid session token")

const sessionLifetime = 7 * 24 * time.Hour

// AuthService implements the single-password session gate: the archive has
// one shared password, verified against a bcrypt hash from configuration,
// and sessions are carried by a signed JWT cookie.
type AuthService struct {
	jwtSecret    []byte
	passwordHash string
	logger       Logger
}

func NewAuthService(jwtSecret, passwordHash string, logger Logger) *AuthService {
	return &AuthService{
		jwtSecret:    []byte(jwtSecret),
		passwordHash: passwordHash,
		logger:       logger,
	}
}

// VerifyPassword checks the submitted archive password.
func (s *AuthService) VerifyPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		s.logger.Warn("failed login attempt")
		return ErrInvalidPassword
	}
	return nil
}

// CreateSessionToken issues a signed session token.
func (s *AuthService) CreateSessionToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "archive",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// ValidateSessionToken verifies a session token's signature and expiry.
func (s *AuthService) ValidateSessionToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
