package jwtx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/gemterm/pkg/cryptox"
	"github.com/aussiebroadwan/gemterm/pkg/idx"
)

// SigningKeyRecord is a persisted signing key.
type SigningKeyRecord struct {
	Kid           string
	PrivateKeyPEM []byte
	CreatedAt     time.Time
}

// KeyStore persists signing keys so sessions survive restarts.
type KeyStore interface {
	ListSigningKeys(ctx context.Context) ([]SigningKeyRecord, error)
	CreateSigningKey(ctx context.Context, key SigningKeyRecord) error
}

// KeyManager pairs the active Signer with a Verifier over every known key.
type KeyManager struct {
	signer   *Signer
	keys     *KeySet
	verifier *Verifier
}

// NewEphemeralKeyManager generates a key that lives only in memory.
func NewEphemeralKeyManager(issuer string, now func() time.Time) (*KeyManager, error) {
	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	s, err := NewSigner(idx.New().String(), pemKey)
	if err != nil {
		return nil, err
	}
	return newKeyManager(s, nil, issuer, now)
}

// NewPersistentKeyManager loads every stored key for verification and signs
// with the newest. A key is generated and stored when none exist.
func NewPersistentKeyManager(ctx context.Context, ks KeyStore, issuer string, now func() time.Time) (*KeyManager, error) {
	if ks == nil {
		return nil, errors.New("jwtx: key store is required")
	}

	records, err := ks.ListSigningKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("jwtx: list signing keys: %w", err)
	}

	if len(records) == 0 {
		pemKey, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		rec := SigningKeyRecord{Kid: idx.New().String(), PrivateKeyPEM: pemKey, CreatedAt: time.Now().UTC()}
		if err := ks.CreateSigningKey(ctx, rec); err != nil {
			return nil, fmt.Errorf("jwtx: store signing key: %w", err)
		}
		records = append(records, rec)
	}

	var (
		active  *Signer
		created time.Time
		others  []*Signer
	)
	for _, rec := range records {
		s, err := NewSigner(rec.Kid, rec.PrivateKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("jwtx: load key %s: %w", rec.Kid, err)
		}
		if active == nil || rec.CreatedAt.After(created) {
			if active != nil {
				others = append(others, active)
			}
			active, created = s, rec.CreatedAt
			continue
		}
		others = append(others, s)
	}

	return newKeyManager(active, others, issuer, now)
}

func newKeyManager(active *Signer, others []*Signer, issuer string, now func() time.Time) (*KeyManager, error) {
	keys := NewKeySet()
	for _, s := range append([]*Signer{active}, others...) {
		if err := keys.Add(s.KID(), s.PublicKey()); err != nil {
			return nil, err
		}
	}
	return &KeyManager{
		signer:   active,
		keys:     keys,
		verifier: NewVerifier(keys, issuer, now),
	}, nil
}

func (m *KeyManager) Signer() *Signer     { return m.signer }
func (m *KeyManager) Verifier() *Verifier { return m.verifier }
func (m *KeyManager) NumKeys() int        { return m.keys.Len() }
