// Package match compiles user patterns into bit-exact matchers that run
// identically on the CPU and, through KernelArgs, on the GPU.
package match

import (
	"math/big"
	"math/bits"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// MaxMaskLen bounds the compiled mask to the derived public key size.
const MaxMaskLen = 32

// Mask matches candidates whose masked bytes equal Required.
// Required is always pre-masked.
type Mask struct {
	required []byte
	mask     []byte
}

// NewMask builds a Mask from raw required/mask bytes. Required is masked on
// the way in so the hot path is a single AND and compare per byte.
func NewMask(required, mask []byte) *Mask {
	if len(required) != len(mask) {
		panic("match: required and mask length differ")
	}
	if len(mask) > MaxMaskLen {
		required, mask = required[:MaxMaskLen], mask[:MaxMaskLen]
	}
	m := &Mask{
		required: make([]byte, len(mask)),
		mask:     make([]byte, len(mask)),
	}
	for i := range mask {
		m.mask[i] = mask[i]
		m.required[i] = required[i] & mask[i]
	}
	return m
}

// Required returns a copy of the required bytes.
func (m *Mask) Required() []byte { return append([]byte(nil), m.required...) }

// Bytes returns a copy of the mask bytes.
func (m *Mask) Bytes() []byte { return append([]byte(nil), m.mask...) }

// Len is the number of candidate bytes the mask constrains.
func (m *Mask) Len() int { return len(m.mask) }

// Matches reports whether the first Len() bytes of id satisfy the mask.
// Shorter candidates never match.
func (m *Mask) Matches(id []byte) bool {
	if len(id) < len(m.mask) {
		return false
	}
	for i, mb := range m.mask {
		if id[i]&mb != m.required[i] {
			return false
		}
	}
	return true
}

// Popcount is the number of constrained bits.
func (m *Mask) Popcount() int {
	n := 0
	for _, b := range m.mask {
		n += bits.OnesCount8(b)
	}
	return n
}

// EstimatedAttempts returns 2^Popcount().
func (m *Mask) EstimatedAttempts() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(m.Popcount()))
}

// KernelArgs exposes the mask to the GPU kernel.
func (m *Mask) KernelArgs() generator.KernelArgs {
	return generator.KernelArgs{
		Type:     generator.KernelMask,
		Required: m.Required(),
		Mask:     m.Bytes(),
	}
}
