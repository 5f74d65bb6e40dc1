package jwtx

import (
	"crypto/ed25519"
	"errors"

	"github.com/aussiebroadwan/gemterm/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Signer issues EdDSA-signed session tokens.
type Signer struct {
	kid string
	key ed25519.PrivateKey
}

// NewSigner loads a PKCS8 Ed25519 private key.
func NewSigner(kid string, pemKey []byte) (*Signer, error) {
	if kid == "" {
		return nil, errors.New("jwtx: signer kid is required")
	}
	key, err := cryptox.ParseEd25519Key(pemKey)
	if err != nil {
		return nil, err
	}
	return &Signer{kid: kid, key: key}, nil
}

func (s *Signer) KID() string { return s.kid }

func (s *Signer) PublicKey() ed25519.PublicKey {
	return s.key.Public().(ed25519.PublicKey)
}

func (s *Signer) Sign(claims SessionClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}
