package cryptox_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/aussiebroadwan/gemterm/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestEd25519RoundTrip(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	priv, err := cryptox.ParseEd25519Key(pemBytes)
	require.NoError(t, err)
	require.Len(t, priv, ed25519.PrivateKeySize)

	msg := []byte("hello")
	sig := ed25519.Sign(priv, msg)
	require.True(t, ed25519.Verify(priv.Public().(ed25519.PublicKey), msg, sig))
}

func TestParseEd25519KeyRejectsJunk(t *testing.T) {
	_, err := cryptox.ParseEd25519Key([]byte("not pem"))
	require.Error(t, err)
}
