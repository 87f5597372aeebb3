package solana

import (
	"errors"
	"math/big"
	"strings"

	"github.com/Amr-9/VanityHunter/pkg/match"
)

const (
	base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	base58MinChar  = '1' // Smallest Base58 character (value 0)
	AddressLen     = 44  // Length of a Base58 public key without a leading zero byte
	pubKeyLen      = 32
)

var (
	// ErrLeadingOne is returned for prefixes starting with '1'. Such
	// addresses encode a leading zero byte and do not form one range.
	ErrLeadingOne = errors.New("solana: prefixes starting with '1' are not supported")
	// ErrUnreachablePrefix is returned when no 32-byte key encodes to the prefix.
	ErrUnreachablePrefix = errors.New("solana: no public key encodes to this prefix")

	base    = big.NewInt(58)
	keySpan = new(big.Int).Lsh(big.NewInt(1), 8*pubKeyLen) // 2^256
)

// PrefixRange converts a Base58 prefix into the byte range of public keys
// whose address starts with it. Addresses are assumed to be AddressLen
// characters long; if no key of that length carries the prefix, the
// shorter form (AddressLen-1) is used instead.
//
// Example:
//
//	prefix = "Amr"
//	Min = value("Amr11111111111111111111111111111111111111111")
//	Max = value("Amrzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz")
//
// The matcher then checks Min <= pubKey <= Max as big-endian integers.
func PrefixRange(prefix string) (*match.Range, error) {
	if prefix == "" {
		return fullRange(), nil
	}
	if prefix[0] == base58MinChar {
		return nil, ErrLeadingOne
	}
	value := new(big.Int)
	for i := 0; i < len(prefix); i++ {
		d := strings.IndexByte(base58Alphabet, prefix[i])
		if d < 0 {
			return nil, &match.InvalidCharError{Char: rune(prefix[i]), Pos: i, Alphabet: base58Alphabet}
		}
		value.Mul(value, base)
		value.Add(value, big.NewInt(int64(d)))
	}
	if len(prefix) > AddressLen {
		return nil, ErrUnreachablePrefix
	}

	for length := AddressLen; length >= AddressLen-1 && length >= len(prefix); length-- {
		lo, hi, ok := rangeForLength(value, len(prefix), length)
		if ok {
			return match.NewRange(toBytes32(lo), toBytes32(hi)), nil
		}
	}
	return nil, ErrUnreachablePrefix
}

// rangeForLength returns the key interval whose length-character encoding
// starts with the prefix value, clipped to keys that encode to exactly
// that length.
func rangeForLength(prefix *big.Int, prefixLen, length int) (lo, hi *big.Int, ok bool) {
	pad := new(big.Int).Exp(base, big.NewInt(int64(length-prefixLen)), nil)
	lo = new(big.Int).Mul(prefix, pad)
	hi = new(big.Int).Add(lo, pad)
	hi.Sub(hi, big.NewInt(1))

	// Keys of this encoded length lie in [58^(length-1), min(58^length, 2^256) - 1].
	floor := new(big.Int).Exp(base, big.NewInt(int64(length-1)), nil)
	ceil := new(big.Int).Exp(base, big.NewInt(int64(length)), nil)
	if ceil.Cmp(keySpan) > 0 {
		ceil.Set(keySpan)
	}
	ceil.Sub(ceil, big.NewInt(1))

	if lo.Cmp(floor) < 0 {
		lo.Set(floor)
	}
	if hi.Cmp(ceil) > 0 {
		hi.Set(ceil)
	}
	return lo, hi, lo.Cmp(hi) <= 0
}

func fullRange() *match.Range {
	lo := make([]byte, pubKeyLen)
	hi := make([]byte, pubKeyLen)
	for i := range hi {
		hi[i] = 0xff
	}
	return match.NewRange(lo, hi)
}

// toBytes32 renders v as a 32-byte big-endian value. v must be < 2^256.
func toBytes32(v *big.Int) []byte {
	out := make([]byte, pubKeyLen)
	v.FillBytes(out)
	return out
}
