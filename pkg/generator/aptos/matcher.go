// Package aptos implements Aptos vanity addresses: the hex encoding of
// SHA3-256(pubkey || 0x00), where 0x00 is the single-signature scheme byte.
package aptos

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/match"
)

const (
	addressLead      = "0x"
	singleSigScheme  = 0x00
	MaxPrefixLen     = 64
	authKeyInputSize = ed25519.PublicKeySize + 1
)

// Scheme derives Aptos accounts.
type Scheme struct{}

// New returns the Aptos scheme.
func New() *Scheme { return &Scheme{} }

// Network returns generator.Aptos.
func (*Scheme) Network() generator.Network { return generator.Aptos }

// Compile turns a hex prefix, with or without 0x, into a mask target.
func (*Scheme) Compile(pattern string) (generator.Target, error) {
	pattern = strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(pattern, "0x"), "0X"))
	c, err := match.CompileHex(pattern, MaxPrefixLen)
	if err != nil {
		return nil, err
	}
	return match.NewPrefixTarget(c, addressLead, true), nil
}

// Identifier returns the 32-byte account address.
func (*Scheme) Identifier(key *generator.KeyMaterial, buf []byte) ([]byte, bool) {
	priv := ed25519.NewKeyFromSeed(key[:])
	var data [authKeyInputSize]byte
	copy(data[:], priv[ed25519.SeedSize:])
	data[ed25519.PublicKeySize] = singleSigScheme
	sum := sha3.Sum256(data[:])
	if cap(buf) >= len(sum) {
		buf = buf[:len(sum)]
		copy(buf, sum[:])
		return buf, true
	}
	return sum[:], true
}

// Account renders the address and the hex private key.
func (s *Scheme) Account(key generator.KeyMaterial) (generator.Account, error) {
	return generator.Account{
		Address:    DeriveAddress(ed25519.NewKeyFromSeed(key[:]).Public().(ed25519.PublicKey)),
		PrivateKey: addressLead + hex.EncodeToString(key[:]),
	}, nil
}

// DeriveAddress derives an Aptos address from an Ed25519 public key.
func DeriveAddress(pubKey []byte) string {
	data := make([]byte, len(pubKey)+1)
	copy(data, pubKey)
	data[len(pubKey)] = singleSigScheme
	hash := sha3.Sum256(data)
	return addressLead + hex.EncodeToString(hash[:])
}
