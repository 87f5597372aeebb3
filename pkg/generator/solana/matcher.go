// Package solana implements Solana vanity addresses: the Base58 encoding of
// an Ed25519 public key. Base58 digits do not align with key bits, so a
// prefix compiles to a numeric range over the public key instead of a mask.
package solana

import (
	"crypto/ed25519"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/match"
)

// Scheme derives Solana accounts.
type Scheme struct{}

// New returns the Solana scheme.
func New() *Scheme { return &Scheme{} }

// Network returns generator.Solana.
func (*Scheme) Network() generator.Network { return generator.Solana }

// Compile turns a case-sensitive Base58 prefix into a range target.
func (*Scheme) Compile(pattern string) (generator.Target, error) {
	r, err := PrefixRange(pattern)
	if err != nil {
		return nil, err
	}
	return &Target{Range: r, prefix: pattern}, nil
}

// Identifier returns the public key.
func (*Scheme) Identifier(key *generator.KeyMaterial, _ []byte) ([]byte, bool) {
	priv := ed25519.NewKeyFromSeed(key[:])
	return priv[ed25519.SeedSize:], true
}

// Account renders the Base58 address and the Base58 64-byte keypair that
// wallets such as Phantom import.
func (*Scheme) Account(key generator.KeyMaterial) (generator.Account, error) {
	priv := ed25519.NewKeyFromSeed(key[:])
	return generator.Account{
		Address:    base58.Encode(priv[ed25519.SeedSize:]),
		PrivateKey: base58.Encode(priv),
	}, nil
}

// Target is a compiled Solana prefix.
type Target struct {
	*match.Range
	prefix string
}

// Accepts checks the address prefix, case-sensitively.
func (t *Target) Accepts(address string) bool {
	return strings.HasPrefix(address, t.prefix)
}

// Pattern returns the prefix.
func (t *Target) Pattern() string { return t.prefix }
