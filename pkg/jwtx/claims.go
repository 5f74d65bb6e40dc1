package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are carried by terminal session tokens.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Session row id; verification also requires the row to still exist.
	SID string `json:"sid"`

	// Admin sessions bypass the invite ledger and may use admin routes.
	Admin bool `json:"adm,omitempty"`
}

func NewSessionClaims(identity, sid string, admin bool, issuer string, issuedAt, expiresAt time.Time) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        sid,
		},
		SID:   sid,
		Admin: admin,
	}
}

// ValidateExpiry checks exp and nbf against now.
func (c *SessionClaims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
