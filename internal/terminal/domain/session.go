package domain

import "time"

// Session is a logged-in identity and its access window.
type Session struct {
	ID         string
	Identity   string
	IsAdmin    bool
	ExpiryDate time.Time
	Code       string // ledger code it was granted from; empty for the master-code path
	CreatedAt  time.Time
}

// ValidAt reports whether the session's expiry is still in the future.
func (s Session) ValidAt(now time.Time) bool {
	return now.Before(s.ExpiryDate)
}

// SessionExpiryPolicy decides how a redemption's session expiry is computed.
type SessionExpiryPolicy string

const (
	// ExpiryFixed grants now + session TTL regardless of the code.
	ExpiryFixed SessionExpiryPolicy = "fixed"
	// ExpiryCapToCode additionally caps the session at the code's own expiry.
	ExpiryCapToCode SessionExpiryPolicy = "code"
)
