package market

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

var ErrInvalidCatalogue = errors.New("market: invalid wallet catalogue")

// Wallet is a labelled address worth watching.
type Wallet struct {
	Address string       `yaml:"address"`
	Label   string       `yaml:"label"`
	Chain   domain.Chain `yaml:"chain"`
}

// WalletCatalogue is the YAML document listing watched wallets:
//
//	wallets:
//	  - address: 5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1
//	    label: Raydium authority
//	    chain: solana
type WalletCatalogue struct {
	Wallets []Wallet `yaml:"wallets"`
}

// LoadWalletCatalogue reads and validates a catalogue file.
func LoadWalletCatalogue(path string) (WalletCatalogue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return WalletCatalogue{}, fmt.Errorf("read wallet catalogue: %w", err)
	}
	return ParseWalletCatalogue(raw)
}

func ParseWalletCatalogue(raw []byte) (WalletCatalogue, error) {
	var c WalletCatalogue
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return WalletCatalogue{}, fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}

	seen := make(map[string]struct{}, len(c.Wallets))
	for i := range c.Wallets {
		w := &c.Wallets[i]
		w.Address = strings.TrimSpace(w.Address)
		w.Label = strings.TrimSpace(w.Label)
		if w.Chain == "" {
			w.Chain = domain.ChainSolana
		}
		if w.Address == "" {
			return WalletCatalogue{}, fmt.Errorf("%w: wallet %d has no address", ErrInvalidCatalogue, i)
		}
		if !w.Chain.Supported() {
			return WalletCatalogue{}, fmt.Errorf("%w: wallet %s on unsupported chain %q", ErrInvalidCatalogue, w.Address, w.Chain)
		}
		if _, dup := seen[w.Address]; dup {
			return WalletCatalogue{}, fmt.Errorf("%w: duplicate wallet %s", ErrInvalidCatalogue, w.Address)
		}
		seen[w.Address] = struct{}{}
		if w.Label == "" {
			w.Label = w.Address
		}
	}
	return c, nil
}

func (c WalletCatalogue) ForChain(chain domain.Chain) []Wallet {
	var out []Wallet
	for _, w := range c.Wallets {
		if w.Chain == chain {
			out = append(out, w)
		}
	}
	return out
}

func (c WalletCatalogue) Label(address string) (string, bool) {
	for _, w := range c.Wallets {
		if w.Address == address {
			return w.Label, true
		}
	}
	return "", false
}
