package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

// Manager gates the admin area. There is a single shared password; a
// successful login is carried as an HMAC-signed token with an admin
// flag. This is intentionally weak auth, see the config notes.
type Manager struct {
	passwordHash []byte
	secret       []byte
}

// NewManager hashes the configured admin password and keeps the signing
// secret for session tokens.
func NewManager(adminPassword, sessionSecret string) (*Manager, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &Manager{
		passwordHash: hash,
		secret:       []byte(sessionSecret),
	}, nil
}

// CheckPassword compares a submitted password with the admin password.
func (m *Manager) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil
}

// IssueSession creates a signed session token with the admin flag set.
func (m *Manager) IssueSession() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin": true,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(sessionTTL).Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// VerifySession reports whether tokenString is a valid session with the
// admin flag.
func (m *Manager) VerifySession(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	admin, ok := claims["admin"].(bool)
	return ok && admin
}
