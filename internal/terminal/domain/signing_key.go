package domain

import "time"

// SigningKey is a persisted Ed25519 session-token key (PKCS8 PEM).
type SigningKey struct {
	Kid           string
	PrivateKeyPEM []byte
	CreatedAt     time.Time
}
