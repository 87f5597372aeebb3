// Package algorand implements Algorand vanity addresses. An address is the
// base32 encoding of the Ed25519 public key followed by a checksum, so a
// prefix constrains the public key bits directly and compiles to a mask
// the GPU kernel can evaluate.
package algorand

import (
	"crypto/ed25519"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/match"
)

// MaxPrefixLen is the longest prefix whose bits lie entirely inside the
// public key (51 * 5 = 255 bits).
const MaxPrefixLen = 51

// Scheme derives Algorand accounts.
type Scheme struct{}

// New returns the Algorand scheme.
func New() *Scheme { return &Scheme{} }

// Network returns generator.Algorand.
func (*Scheme) Network() generator.Network { return generator.Algorand }

// Compile turns an address prefix into a mask target.
func (*Scheme) Compile(pattern string) (generator.Target, error) {
	c, err := match.CompileBase32(pattern, match.Base32Std, MaxPrefixLen)
	if err != nil {
		return nil, err
	}
	return &Target{
		Mask:      c.Mask,
		prefix:    match.Base32Std.Normalize(c.Pattern),
		truncated: c.Truncated,
	}, nil
}

// Identifier returns the public key.
func (*Scheme) Identifier(key *generator.KeyMaterial, _ []byte) ([]byte, bool) {
	priv := ed25519.NewKeyFromSeed(key[:])
	return priv[ed25519.SeedSize:], true
}

// Account renders the address, private key and mnemonic.
func (*Scheme) Account(key generator.KeyMaterial) (generator.Account, error) {
	mnemonic, err := Mnemonic(key[:])
	if err != nil {
		return generator.Account{}, err
	}
	return generator.Account{
		Address:    DeriveAddress(PublicKey(key[:])),
		PrivateKey: EncodePrivateKey(key[:]),
		Mnemonic:   mnemonic,
	}, nil
}

// Target is a compiled Algorand prefix.
type Target struct {
	*match.Mask
	prefix    string
	truncated bool
}

// Accepts checks the rendered address against the prefix.
func (t *Target) Accepts(address string) bool {
	return match.HasPrefix(address, t.prefix, false)
}

// Pattern returns the normalized prefix.
func (t *Target) Pattern() string { return t.prefix }

// Truncated reports whether the requested prefix was cut to MaxPrefixLen.
func (t *Target) Truncated() bool { return t.truncated }
