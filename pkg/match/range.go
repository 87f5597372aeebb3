package match

import (
	"bytes"
	"math/big"
)

// Range matches identifiers that lie between Min and Max inclusive when
// compared as big-endian integers of equal width.
type Range struct {
	Min []byte
	Max []byte
}

// NewRange returns a Range. Min and Max must have the same length.
func NewRange(lo, hi []byte) *Range {
	if len(lo) != len(hi) {
		panic("match: range bounds differ in length")
	}
	return &Range{Min: lo, Max: hi}
}

// Matches reports whether Min <= id[:len(Min)] <= Max.
func (r *Range) Matches(id []byte) bool {
	if len(id) < len(r.Min) {
		return false
	}
	id = id[:len(r.Min)]
	return bytes.Compare(id, r.Min) >= 0 && bytes.Compare(id, r.Max) <= 0
}

// EstimatedAttempts returns 2^(8*len) / (Max-Min+1).
func (r *Range) EstimatedAttempts() *big.Int {
	space := new(big.Int).Lsh(big.NewInt(1), uint(8*len(r.Min)))
	width := new(big.Int).SetBytes(r.Max)
	width.Sub(width, new(big.Int).SetBytes(r.Min))
	width.Add(width, big.NewInt(1))
	if width.Sign() <= 0 {
		return space
	}
	return space.Quo(space, width)
}
