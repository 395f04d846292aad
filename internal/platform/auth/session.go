package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// devSessionSecret backs sessions when no SESSION_SECRET is configured.
// Config validation refuses to start outside development without a real
// secret, so this only ever signs throwaway dev sessions.
const devSessionSecret = "healthconnect-dev-session-secret-not-for-production"

type SessionConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

type SessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionManager issues and verifies HS256 session tokens for allow-list
// users.
type SessionManager struct {
	cfg SessionConfig
	now func() time.Time
}

func NewSessionManager(cfg SessionConfig) *SessionManager {
	if len(cfg.Secret) == 0 {
		cfg.Secret = []byte(devSessionSecret)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "healthconnect-portal"
	}
	return &SessionManager{cfg: cfg, now: time.Now}
}

func (m *SessionManager) Issue(user *User) (string, error) {
	now := m.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
		},
		Email: user.Email,
		Role:  string(user.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (m *SessionManager) Verify(tokenString string) (*User, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.cfg.Secret, nil
	}, jwt.WithIssuer(m.cfg.Issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("verify session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return &User{ID: claims.Subject, Email: claims.Email, Role: Role(claims.Role)}, nil
}
