// Package bitcoin implements Bitcoin Taproot (P2TR) vanity addresses. The
// Bech32m data part after "bc1p" encodes the tweaked output key 5 bits per
// character, so a prefix compiles to a mask over the output key.
package bitcoin

import (
	"strings"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/match"
)

// MaxPrefixLen is the longest prefix (after "bc1p") fully inside the key.
const MaxPrefixLen = 51

// Scheme derives Taproot accounts.
type Scheme struct{}

// New returns the Bitcoin Taproot scheme.
func New() *Scheme { return &Scheme{} }

// Network returns generator.Bitcoin.
func (*Scheme) Network() generator.Network { return generator.Bitcoin }

// Compile turns a Bech32 prefix into a mask over the output key. A leading
// "bc1p" is accepted and ignored.
func (*Scheme) Compile(pattern string) (generator.Target, error) {
	pattern = strings.ToLower(pattern)
	pattern = strings.TrimPrefix(pattern, AddressLead)
	c, err := match.CompileBase32(pattern, match.Bech32, MaxPrefixLen)
	if err != nil {
		return nil, err
	}
	return match.NewPrefixTarget(c, AddressLead, true), nil
}

// Identifier returns the x-only output key. Keys outside the curve order
// are rejected.
func (*Scheme) Identifier(key *generator.KeyMaterial, buf []byte) ([]byte, bool) {
	priv, ok := privateKey(key)
	if !ok {
		return nil, false
	}
	out := OutputKey(priv.PubKey())
	if cap(buf) >= len(out) {
		buf = buf[:len(out)]
		copy(buf, out[:])
		return buf, true
	}
	return out[:], true
}

// Account renders the P2TR address and the WIF private key.
func (*Scheme) Account(key generator.KeyMaterial) (generator.Account, error) {
	priv, ok := privateKey(&key)
	if !ok {
		return generator.Account{}, errInvalidKey
	}
	out := OutputKey(priv.PubKey())
	addr, err := EncodeAddress(out[:])
	if err != nil {
		return generator.Account{}, err
	}
	wif, err := PrivateKeyToWIF(priv)
	if err != nil {
		return generator.Account{}, err
	}
	return generator.Account{Address: addr, PrivateKey: wif}, nil
}
