package generator

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// KeySize is the size of the private seed every scheme starts from.
const KeySize = 32

// ErrEntropy is returned when the secure random source fails.
var ErrEntropy = errors.New("secure random source unavailable")

// KeyMaterial is a 32-byte private seed. It is owned by exactly one worker.
type KeyMaterial [KeySize]byte

// Randomize fills the key from r, or from crypto/rand when r is nil.
func (k *KeyMaterial) Randomize(r io.Reader) error {
	if r == nil {
		r = rand.Reader
	}
	if _, err := io.ReadFull(r, k[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return nil
}

// Increment treats the key as a big-endian 256-bit integer and adds one.
// All 0xFF wraps around to all zero.
func (k *KeyMaterial) Increment() {
	for i := KeySize - 1; i >= 0; i-- {
		k[i]++
		if k[i] != 0 {
			return
		}
	}
}

// IsZero reports whether every byte is zero, the GPU "no match" sentinel.
func (k *KeyMaterial) IsZero() bool {
	var acc byte
	for _, b := range k {
		acc |= b
	}
	return acc == 0
}

// String returns the upper-case hex encoding.
func (k KeyMaterial) String() string {
	const hextable = "0123456789ABCDEF"
	out := make([]byte, KeySize*2)
	for i, v := range k {
		out[i*2] = hextable[v>>4]
		out[i*2+1] = hextable[v&0x0f]
	}
	return string(out)
}

// ParseKeyMaterial decodes a 64-character hex string.
func ParseKeyMaterial(s string) (KeyMaterial, error) {
	var k KeyMaterial
	b, err := hex.DecodeString(s)
	if err != nil {
		return k, err
	}
	if len(b) != KeySize {
		return k, fmt.Errorf("key material must be %d bytes, got %d", KeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}
