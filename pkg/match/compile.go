package match

import (
	"fmt"
	"strings"
)

// Wildcard characters accepted in every pattern. They match any character.
const (
	WildcardDot  = '.'
	WildcardStar = '*'
)

// Standard alphabets.
var (
	// Base32Std is RFC 4648 base32, used by Algorand addresses.
	Base32Std = NewAlphabet("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567", true)
	// Bech32 is the bech32/bech32m data alphabet.
	Bech32 = NewAlphabet("qpzry9x8gf2tvdw0s3jn54khce6mua7l", true)
	// Hex is lower-case hexadecimal.
	Hex = NewAlphabet("0123456789abcdef", true)
)

// Alphabet maps pattern characters to their digit values.
type Alphabet struct {
	chars  string
	fold   bool
	values [256]int8
}

// NewAlphabet builds an Alphabet. With fold set, upper and lower case
// spellings of a letter share a value.
func NewAlphabet(chars string, fold bool) *Alphabet {
	a := &Alphabet{chars: chars, fold: fold}
	for i := range a.values {
		a.values[i] = -1
	}
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		a.values[c] = int8(i)
		if fold {
			a.values[toLower(c)] = int8(i)
			a.values[toUpper(c)] = int8(i)
		}
	}
	return a
}

// Chars returns the alphabet in value order.
func (a *Alphabet) Chars() string { return a.chars }

// Value returns the digit value of c; care is false for wildcards.
func (a *Alphabet) Value(c byte) (v byte, care bool, err error) {
	if c == WildcardDot || c == WildcardStar {
		return 0, false, nil
	}
	if d := a.values[c]; d >= 0 {
		return byte(d), true, nil
	}
	return 0, false, &InvalidCharError{Char: rune(c), Alphabet: a.chars}
}

// Normalize maps every character of s to its canonical spelling, keeping
// wildcards as they are.
func (a *Alphabet) Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if d := a.values[c]; d >= 0 {
			c = a.chars[d]
		}
		b.WriteByte(c)
	}
	return b.String()
}

// InvalidCharError reports a pattern character outside the alphabet.
type InvalidCharError struct {
	Char     rune
	Pos      int
	Alphabet string
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d (allowed: %s, wildcards %c %c)",
		e.Char, e.Pos, e.Alphabet, WildcardDot, WildcardStar)
}

// Compiled is the output of a pattern compiler.
type Compiled struct {
	*Mask
	Pattern   string // Effective pattern after truncation
	Truncated bool   // Input was longer than the supported maximum
}

const (
	// workBufLen bounds the compiler's staging buffer. One 8-character block
	// fills 5 bytes, which are evicted as soon as the block completes.
	workBufLen = 36
	blockChars = 8
	blockBytes = 5
)

// bytesUsed5 is how many bytes of the current block are touched once the
// character at that phase has been packed.
var bytesUsed5 = [blockChars]int{1, 2, 2, 3, 4, 4, 5, 5}

// pack5 ORs the 5-bit value v into buf at the given phase of a 40-bit block,
// most significant bit first.
func pack5(buf []byte, v byte, phase int) {
	switch phase {
	case 0: // bits 0-4: byte 0 high
		buf[0] |= v << 3
	case 1: // bits 5-9: byte 0 low 3, byte 1 high 2
		buf[0] |= v >> 2
		buf[1] |= v << 6
	case 2: // bits 10-14: byte 1 middle
		buf[1] |= v << 1
	case 3: // bits 15-19: byte 1 low 1, byte 2 high 4
		buf[1] |= v >> 4
		buf[2] |= v << 4
	case 4: // bits 20-24: byte 2 low 4, byte 3 high 1
		buf[2] |= v >> 1
		buf[3] |= v << 7
	case 5: // bits 25-29: byte 3 middle
		buf[3] |= v << 2
	case 6: // bits 30-34: byte 3 low 2, byte 4 high 3
		buf[3] |= v >> 3
		buf[4] |= v << 5
	case 7: // bits 35-39: byte 4 low
		buf[4] |= v
	}
}

// CompileBase32 compiles a prefix over a 32-character alphabet into a
// required/mask pair over the raw byte stream the address encodes, packing
// 5 bits per character MSB first. Patterns longer than maxChars are
// truncated and flagged; maxChars <= 0 means the full 32-byte mask.
func CompileBase32(prefix string, alpha *Alphabet, maxChars int) (*Compiled, error) {
	limit := MaxMaskLen * 8 / 5
	if maxChars > 0 && maxChars < limit {
		limit = maxChars
	}
	c := &Compiled{Pattern: prefix}
	if len(prefix) > limit {
		c.Pattern = prefix[:limit]
		c.Truncated = true
	}

	var req, msk [workBufLen]byte
	outReq := make([]byte, 0, MaxMaskLen)
	outMsk := make([]byte, 0, MaxMaskLen)

	n := len(c.Pattern)
	for i := 0; i < n; i++ {
		v, care, err := alpha.Value(c.Pattern[i])
		if err != nil {
			err.(*InvalidCharError).Pos = i
			return nil, err
		}
		var mv byte
		if care {
			mv = 0x1f
		}
		phase := i % blockChars
		pack5(req[:], v, phase)
		pack5(msk[:], mv, phase)

		if phase == blockChars-1 {
			outReq = append(outReq, req[:blockBytes]...)
			outMsk = append(outMsk, msk[:blockBytes]...)
			slide(req[:], blockBytes)
			slide(msk[:], blockBytes)
		}
	}
	if rem := n % blockChars; rem != 0 {
		used := bytesUsed5[rem-1]
		outReq = append(outReq, req[:used]...)
		outMsk = append(outMsk, msk[:used]...)
	}
	if len(outMsk) > MaxMaskLen {
		outReq, outMsk = outReq[:MaxMaskLen], outMsk[:MaxMaskLen]
	}
	c.Mask = NewMask(outReq, outMsk)
	return c, nil
}

// CompileHex compiles a hexadecimal prefix, 4 bits per character.
func CompileHex(prefix string, maxChars int) (*Compiled, error) {
	limit := MaxMaskLen * 2
	if maxChars > 0 && maxChars < limit {
		limit = maxChars
	}
	c := &Compiled{Pattern: prefix}
	if len(prefix) > limit {
		c.Pattern = prefix[:limit]
		c.Truncated = true
	}

	n := len(c.Pattern)
	req := make([]byte, (n+1)/2)
	msk := make([]byte, (n+1)/2)
	for i := 0; i < n; i++ {
		v, care, err := Hex.Value(c.Pattern[i])
		if err != nil {
			err.(*InvalidCharError).Pos = i
			return nil, err
		}
		var mv byte
		if care {
			mv = 0x0f
		}
		if i%2 == 0 {
			req[i/2] |= v << 4
			msk[i/2] |= mv << 4
		} else {
			req[i/2] |= v
			msk[i/2] |= mv
		}
	}
	c.Mask = NewMask(req, msk)
	return c, nil
}

// slide drops the first n bytes of buf and zero-fills the tail.
func slide(buf []byte, n int) {
	copy(buf, buf[n:])
	for i := len(buf) - n; i < len(buf); i++ {
		buf[i] = 0
	}
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
