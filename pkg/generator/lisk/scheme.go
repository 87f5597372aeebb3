// Package lisk implements Lisk legacy numeric addresses. The address value
// is the first 8 bytes of SHA-256(pubkey) read as a little-endian integer,
// rendered in decimal with an "L" suffix. A search asks for addresses at
// most N digits long, which compiles to a numeric threshold.
package lisk

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/match"
)

// Suffix terminates every Lisk address.
const Suffix = "L"

// ErrInvalidLength is returned for lengths outside 1..match.MaxDecimalLen.
var ErrInvalidLength = errors.New("lisk: address length must be a number between 1 and 20")

// Scheme derives Lisk accounts.
type Scheme struct{}

// New returns the Lisk scheme.
func New() *Scheme { return &Scheme{} }

// Network returns generator.Lisk.
func (*Scheme) Network() generator.Network { return generator.Lisk }

// Compile parses the maximum address length (digits, without the suffix).
func (*Scheme) Compile(pattern string) (generator.Target, error) {
	n, err := strconv.Atoi(strings.TrimSpace(pattern))
	if err != nil || n < 1 || n > match.MaxDecimalLen {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLength, pattern)
	}
	return &Target{
		Threshold: match.NewThreshold(match.ThresholdForLength(n)),
		digits:    n,
	}, nil
}

// Identifier returns SHA-256(pubkey), written into buf when it has room.
func (*Scheme) Identifier(key *generator.KeyMaterial, buf []byte) ([]byte, bool) {
	priv := ed25519.NewKeyFromSeed(key[:])
	sum := sha256.Sum256(priv[ed25519.SeedSize:])
	if cap(buf) >= len(sum) {
		buf = buf[:len(sum)]
		copy(buf, sum[:])
		return buf, true
	}
	return sum[:], true
}

// Account renders the address and the 64-byte secret key as hex.
func (s *Scheme) Account(key generator.KeyMaterial) (generator.Account, error) {
	priv := ed25519.NewKeyFromSeed(key[:])
	return generator.Account{
		Address:    Address(priv[ed25519.SeedSize:]),
		PrivateKey: hex.EncodeToString(priv),
	}, nil
}

// Value is the numeric address of an Ed25519 public key.
func Value(pubKey []byte) uint64 {
	sum := sha256.Sum256(pubKey)
	return match.NumericValue(sum[:])
}

// Address renders the numeric address of pubKey.
func Address(pubKey []byte) string {
	return strconv.FormatUint(Value(pubKey), 10) + Suffix
}

// Target accepts addresses of at most a given number of digits.
type Target struct {
	*match.Threshold
	digits int
}

// Accepts reports whether the address has at most the requested digits.
func (t *Target) Accepts(address string) bool {
	digits := strings.TrimSuffix(address, Suffix)
	if len(digits) == 0 || len(digits) == len(address) {
		return false
	}
	return len(digits) <= t.digits
}

// Pattern describes the length bound.
func (t *Target) Pattern() string {
	return fmt.Sprintf("at most %d digits", t.digits)
}
