package match

import (
	"encoding/binary"
	"math"
	"math/big"
	"math/bits"
	"strings"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

// MaxDecimalLen is the longest decimal rendering of a uint64.
const MaxDecimalLen = 20

// MaxAddress computes a numeric threshold from a digit pattern: every
// character contributes its character code times 10^position, counting
// positions from the right. The sum saturates at math.MaxUint64.
func MaxAddress(digits string) uint64 {
	var total uint64
	n := len(digits)
	for i := 0; i < n; i++ {
		term, ok := mulPow10(uint64(digits[i]), n-1-i)
		if !ok {
			return math.MaxUint64
		}
		var carry uint64
		total, carry = bits.Add64(total, term, 0)
		if carry != 0 {
			return math.MaxUint64
		}
	}
	return total
}

// ThresholdForLength is the threshold used for a maximum decimal length.
func ThresholdForLength(n int) uint64 {
	return MaxAddress(strings.Repeat("9", n))
}

func mulPow10(v uint64, exp int) (uint64, bool) {
	for ; exp > 0; exp-- {
		hi, lo := bits.Mul64(v, 10)
		if hi != 0 {
			return 0, false
		}
		v = lo
	}
	return v, true
}

// Threshold matches identifiers whose numeric address value is at most Max.
// The numeric value is the little-endian uint64 of the first 8 bytes.
type Threshold struct {
	Max uint64
}

// NewThreshold returns a Threshold matcher.
func NewThreshold(limit uint64) *Threshold {
	return &Threshold{Max: limit}
}

// NumericValue extracts the numeric address value from identifier bytes.
func NumericValue(id []byte) uint64 {
	return binary.LittleEndian.Uint64(id[:8])
}

// Matches reports whether the numeric value of id is <= Max.
func (t *Threshold) Matches(id []byte) bool {
	if len(id) < 8 {
		return false
	}
	return NumericValue(id) <= t.Max
}

// EstimatedAttempts returns 2^64 / (Max+1).
func (t *Threshold) EstimatedAttempts() *big.Int {
	space := new(big.Int).Lsh(big.NewInt(1), 64)
	accepted := new(big.Int).SetUint64(t.Max)
	accepted.Add(accepted, big.NewInt(1))
	return space.Quo(space, accepted)
}

// KernelArgs exposes the threshold to the GPU kernel.
func (t *Threshold) KernelArgs() generator.KernelArgs {
	return generator.KernelArgs{
		Type:      generator.KernelThreshold,
		Threshold: t.Max,
	}
}
