package auth

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/campushub/records-portal/internal"
	"github.com/golang-jwt/jwt/v5"
)

// Claims binds a session token to an account and a scope.
type Claims struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	IsStaff   bool   `json:"is_staff"`
	Scope     string `json:"scope"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates HS256 session tokens.
type SessionManager struct {
	Secret   []byte
	Duration time.Duration
}

func NewSessionManager(secret string, duration time.Duration) *SessionManager {
	if duration <= 0 {
		duration = 8 * time.Hour
	}
	return &SessionManager{
		Secret:   []byte(secret),
		Duration: duration,
	}
}

func (m *SessionManager) Issue(accountID int64, username, role string, isStaff bool, scope string) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: accountID,
		Username:  username,
		Role:      role,
		IsStaff:   isStaff,
		Scope:     scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.Duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", accountID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.Secret)
}

func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrInvalidToken
}
