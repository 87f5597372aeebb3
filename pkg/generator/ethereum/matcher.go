// Package ethereum implements Ethereum vanity addresses: the last 20 bytes
// of Keccak-256 over the uncompressed secp256k1 public key, in hex.
package ethereum

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/match"
)

const (
	addressLead  = "0x"
	MaxPrefixLen = 40
)

// Scheme derives Ethereum accounts.
type Scheme struct{}

// New returns the Ethereum scheme.
func New() *Scheme { return &Scheme{} }

// Network returns generator.Ethereum.
func (*Scheme) Network() generator.Network { return generator.Ethereum }

// Compile turns a hex prefix into a mask over the 20 address bytes. The
// match is case-insensitive; EIP-55 checksum casing is not constrained.
func (*Scheme) Compile(pattern string) (generator.Target, error) {
	pattern = strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(pattern, "0x"), "0X"))
	c, err := match.CompileHex(pattern, MaxPrefixLen)
	if err != nil {
		return nil, err
	}
	return match.NewPrefixTarget(c, addressLead, true), nil
}

// Identifier returns the 20 address bytes. Keys outside the curve order
// are rejected.
func (*Scheme) Identifier(key *generator.KeyMaterial, buf []byte) ([]byte, bool) {
	priv, err := crypto.ToECDSA(key[:])
	if err != nil {
		return nil, false
	}
	addr := crypto.PubkeyToAddress(priv.PublicKey)
	if cap(buf) >= len(addr) {
		buf = buf[:len(addr)]
		copy(buf, addr[:])
		return buf, true
	}
	return addr[:], true
}

// Account renders the EIP-55 address and the hex private key.
func (*Scheme) Account(key generator.KeyMaterial) (generator.Account, error) {
	priv, err := crypto.ToECDSA(key[:])
	if err != nil {
		return generator.Account{}, err
	}
	return generator.Account{
		Address:    crypto.PubkeyToAddress(priv.PublicKey).Hex(),
		PrivateKey: hex.EncodeToString(crypto.FromECDSA(priv)),
	}, nil
}
