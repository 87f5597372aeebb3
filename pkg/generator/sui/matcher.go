// Package sui implements Sui vanity addresses: the hex encoding of
// Blake2b-256(0x00 || pubkey), where 0x00 is the Ed25519 scheme flag.
package sui

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/match"
)

const (
	addressLead   = "0x"
	ed25519Flag   = 0x00
	MaxPrefixLen  = 64
	PrivateKeyHRP = "suiprivkey"
)

// Scheme derives Sui accounts.
type Scheme struct{}

// New returns the Sui scheme.
func New() *Scheme { return &Scheme{} }

// Network returns generator.Sui.
func (*Scheme) Network() generator.Network { return generator.Sui }

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
	sum := addressBytes(priv[ed25519.SeedSize:])
	if cap(buf) >= len(sum) {
		buf = buf[:len(sum)]
		copy(buf, sum[:])
		return buf, true
	}
	return sum[:], true
}

// Account renders the address and the bech32 "suiprivkey" private key.
func (*Scheme) Account(key generator.KeyMaterial) (generator.Account, error) {
	pub := ed25519.NewKeyFromSeed(key[:]).Public().(ed25519.PublicKey)
	priv, err := EncodePrivateKey(key)
	if err != nil {
		return generator.Account{}, err
	}
	return generator.Account{
		Address:    DeriveAddress(pub),
		PrivateKey: priv,
	}, nil
}

// DeriveAddress computes the Sui address from an Ed25519 public key.
func DeriveAddress(pubKey []byte) string {
	sum := addressBytes(pubKey)
	return addressLead + hex.EncodeToString(sum[:])
}

// EncodePrivateKey encodes flag || seed as bech32 with the suiprivkey prefix.
func EncodePrivateKey(key generator.KeyMaterial) (string, error) {
	data := make([]byte, 0, 1+len(key))
	data = append(data, ed25519Flag)
	data = append(data, key[:]...)
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("sui: convert private key: %w", err)
	}
	return bech32.Encode(PrivateKeyHRP, conv)
}

func addressBytes(pubKey []byte) [32]byte {
	var data [1 + ed25519.PublicKeySize]byte
	data[0] = ed25519Flag
	copy(data[1:], pubKey)
	return blake2b.Sum256(data[:len(pubKey)+1])
}
