package store

import (
	"context"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/pkg/jwtx"
)

// KeyStoreAdapter exposes a Store as a jwtx.KeyStore so jwtx never imports domain.
type KeyStoreAdapter struct {
	store Store
}

func NewKeyStoreAdapter(s Store) *KeyStoreAdapter {
	return &KeyStoreAdapter{store: s}
}

func (a *KeyStoreAdapter) ListSigningKeys(ctx context.Context) ([]jwtx.SigningKeyRecord, error) {
	keys, err := a.store.SigningKeys().ListSigningKeys(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]jwtx.SigningKeyRecord, len(keys))
	for i, k := range keys {
		out[i] = jwtx.SigningKeyRecord{Kid: k.Kid, PrivateKeyPEM: k.PrivateKeyPEM, CreatedAt: k.CreatedAt}
	}
	return out, nil
}

func (a *KeyStoreAdapter) CreateSigningKey(ctx context.Context, r jwtx.SigningKeyRecord) error {
	return a.store.SigningKeys().CreateSigningKey(ctx, domain.SigningKey{
		Kid:           r.Kid,
		PrivateKeyPEM: r.PrivateKeyPEM,
		CreatedAt:     r.CreatedAt,
	})
}
