package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeAlphabet is the character set generated invite codes are drawn from.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns prefix followed by n characters drawn uniformly from
// CodeAlphabet using crypto/rand.
func GenerateCode(prefix string, n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("cryptox: code length must be positive, got %d", n)
	}
	buf := make([]byte, n)
	limit := big.NewInt(int64(len(CodeAlphabet)))
	for i := range buf {
		v, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("cryptox: generate code: %w", err)
		}
		buf[i] = CodeAlphabet[v.Int64()]
	}
	return prefix + string(buf), nil
}
