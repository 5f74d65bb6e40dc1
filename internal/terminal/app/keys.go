package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
	"github.com/aussiebroadwan/gemterm/pkg/jwtx"
)

// InitSessionKeys creates the KeyManager that signs session tokens.
//
// Storage modes:
//   - "persistent": keys are stored in the database so sessions survive
//     restarts. A key is generated on first start.
//   - "ephemeral": a key is generated on startup and kept only in memory.
//     Every session token becomes invalid when the service restarts.
func InitSessionKeys(ctx context.Context, cfg Config, db store.Store, logger *slog.Logger) (*jwtx.KeyManager, error) {
	switch cfg.KeyStorageMode {
	case "ephemeral":
		keyManager, err := jwtx.NewEphemeralKeyManager(cfg.Issuer, time.Now)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
		}
		logger.Info("generated ephemeral signing key", "issuer", cfg.Issuer)
		logger.Warn("session tokens will not survive a restart")
		return keyManager, nil

	case "persistent", "":
		keyManager, err := jwtx.NewPersistentKeyManager(ctx, store.NewKeyStoreAdapter(db), cfg.Issuer, time.Now)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize persistent key manager: %w", err)
		}
		logger.Info("persistent signing keys loaded",
			"num_keys", keyManager.NumKeys(),
			"issuer", cfg.Issuer,
		)
		return keyManager, nil

	default:
		return nil, fmt.Errorf("unknown key storage mode %q", cfg.KeyStorageMode)
	}
}
