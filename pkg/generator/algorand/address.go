package algorand

import (
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/base32"
	"encoding/base64"
)

const (
	checksumLen = 4  // Trailing bytes of SHA-512/256(pubkey) appended to the address
	AddressLen  = 58 // Base32 characters in an address
)

var addressEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// DeriveAddress renders an Algorand address from an Ed25519 public key.
// Address = Base32(pubkey || SHA-512/256(pubkey)[28:32]), unpadded.
func DeriveAddress(pubKey []byte) string {
	sum := sha512.Sum512_256(pubKey)
	data := make([]byte, 0, len(pubKey)+checksumLen)
	data = append(data, pubKey...)
	data = append(data, sum[len(sum)-checksumLen:]...)
	return addressEncoding.EncodeToString(data)
}

// PublicKey derives the Ed25519 public key for a 32-byte seed.
func PublicKey(seed []byte) ed25519.PublicKey {
	return ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
}

// EncodePrivateKey returns the SDK's base64 form of seed || pubkey.
func EncodePrivateKey(seed []byte) string {
	return base64.StdEncoding.EncodeToString(ed25519.NewKeyFromSeed(seed))
}
