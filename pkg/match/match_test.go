package match

import (
	"encoding/base32"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

func TestCompileBase32_KnownBytes(t *testing.T) {
	tests := []struct {
		prefix   string
		required []byte
		mask     []byte
	}{
		{"A", []byte{0x00}, []byte{0xf8}},
		{"B", []byte{0x08}, []byte{0xf8}},
		{"AB", []byte{0x00, 0x40}, []byte{0xff, 0xc0}},
		{"7", []byte{0xf8}, []byte{0xf8}},
		{".B", []byte{0x00, 0x40}, []byte{0x07, 0xc0}},
		{"*", []byte{0x00}, []byte{0x00}},
		{"77777777", []byte{0xff, 0xff, 0xff, 0xff, 0xff}, []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
		{"AAAAAAAB", []byte{0, 0, 0, 0, 0x01}, []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
		{"AAAAAAAAB", []byte{0, 0, 0, 0, 0, 0x08}, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xf8}},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			c, err := CompileBase32(tt.prefix, Base32Std, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.required, c.Required())
			assert.Equal(t, tt.mask, c.Bytes())
			assert.False(t, c.Truncated)
		})
	}
}

func TestCompileBase32_CaseInsensitive(t *testing.T) {
	upper, err := CompileBase32("ALGO", Base32Std, 0)
	require.NoError(t, err)
	lower, err := CompileBase32("algo", Base32Std, 0)
	require.NoError(t, err)
	assert.Equal(t, upper.Required(), lower.Required())
	assert.Equal(t, upper.Bytes(), lower.Bytes())
}

func TestCompileBase32_InvalidChar(t *testing.T) {
	_, err := CompileBase32("AB1", Base32Std, 0)
	require.Error(t, err)
	var ice *InvalidCharError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, '1', ice.Char)
	assert.Equal(t, 2, ice.Pos)
}

func TestCompileBase32_Truncates(t *testing.T) {
	c, err := CompileBase32(strings.Repeat("A", 60), Base32Std, 51)
	require.NoError(t, err)
	assert.True(t, c.Truncated)
	assert.Len(t, c.Pattern, 51)
	assert.Equal(t, MaxMaskLen, c.Len())
	assert.Equal(t, 51*5, c.Popcount())
}

func TestCompileBase32_MaskCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	chars := Base32Std.Chars()
	for k := 1; k <= 8; k++ {
		for trial := 0; trial < 50; trial++ {
			var b strings.Builder
			for i := 0; i < k; i++ {
				b.WriteByte(chars[rng.Intn(len(chars))])
			}
			c, err := CompileBase32(b.String(), Base32Std, 0)
			require.NoError(t, err)
			assert.Equal(t, 5*k, c.Popcount(), "prefix %q", b.String())
			assert.Equal(t, (5*k+7)/8, c.Len())
			assert.True(t, c.Matches(c.Required()), "prefix %q must match its own required bytes", b.String())
		}
	}
}

func TestCompileBase32_AgreesWithEncoding(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 200; trial++ {
		key := make([]byte, 32)
		rng.Read(key)
		encoded := b32.EncodeToString(key)
		k := 1 + rng.Intn(51)

		c, err := CompileBase32(encoded[:k], Base32Std, 51)
		require.NoError(t, err)
		assert.True(t, c.Matches(key), "k=%d prefix=%q", k, encoded[:k])

		// Flip a constrained bit and the mask must reject.
		other := append([]byte(nil), key...)
		other[0] ^= 0x80
		assert.False(t, c.Matches(other))
	}
}

func TestCompileHex(t *testing.T) {
	c, err := CompileHex("dEaD.e", 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0x0e}, c.Required())
	assert.Equal(t, []byte{0xff, 0xff, 0x0f}, c.Bytes())
	assert.True(t, c.Matches([]byte{0xde, 0xad, 0x7e, 0x00}))
	assert.False(t, c.Matches([]byte{0xde, 0xad, 0x7f, 0x00}))

	_, err = CompileHex("xyz", 0)
	require.Error(t, err)
}

func TestEstimatedAttempts_Monotone(t *testing.T) {
	all, err := CompileBase32("....", Base32Std, 0)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), all.EstimatedAttempts())

	prev := big.NewInt(1)
	for k := 1; k <= 51; k++ {
		c, err := CompileBase32(strings.Repeat("Q", k), Base32Std, 0)
		require.NoError(t, err)
		est := c.EstimatedAttempts()
		assert.Equal(t, 1, est.Cmp(prev), "k=%d", k)
		prev = est
	}
	assert.Equal(t, new(big.Int).Lsh(big.NewInt(1), 255), prev)
}

func TestMask_AgreesWithReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 2000; trial++ {
		n := 1 + rng.Intn(MaxMaskLen)
		required := make([]byte, n)
		mask := make([]byte, n)
		candidate := make([]byte, n)
		rng.Read(required)
		rng.Read(mask)
		rng.Read(candidate)
		// Make matches likely enough to exercise both outcomes.
		if trial%2 == 0 {
			for i := range candidate {
				candidate[i] = required[i]&mask[i] | candidate[i]&^mask[i]
			}
			if trial%4 == 0 {
				candidate[rng.Intn(n)] ^= 1 << uint(rng.Intn(8))
			}
		}

		want := true
		for i := 0; i < n; i++ {
			for bit := 0; bit < 8; bit++ {
				if mask[i]>>bit&1 == 1 && candidate[i]>>bit&1 != required[i]>>bit&1 {
					want = false
				}
			}
		}
		assert.Equal(t, want, NewMask(required, mask).Matches(candidate))
	}
}

func TestMask_ShortCandidate(t *testing.T) {
	m := NewMask([]byte{1, 2}, []byte{0xff, 0xff})
	assert.False(t, m.Matches([]byte{1}))
}

func TestMaxAddress(t *testing.T) {
	// '9' is 57: 57*100 + 57*10 + 57*1
	assert.Equal(t, uint64(6327), MaxAddress("999"))
	assert.Equal(t, uint64(6327), ThresholdForLength(3))
	assert.Equal(t, uint64('1'*10+'2'), MaxAddress("12"))
	assert.Equal(t, uint64(0), MaxAddress(""))
	assert.Equal(t, uint64(1<<64-1), MaxAddress(strings.Repeat("9", 25)))
}

func TestThreshold(t *testing.T) {
	th := NewThreshold(999)
	assert.True(t, th.Matches([]byte{0xe7, 0x03, 0, 0, 0, 0, 0, 0})) // 999
	assert.False(t, th.Matches([]byte{0xe8, 0x03, 0, 0, 0, 0, 0, 0}))
	assert.False(t, th.Matches([]byte{0x01}))

	// truncate(2^64 / 10^15)
	assert.Equal(t, big.NewInt(18446), NewThreshold(999999999999999).EstimatedAttempts())
	assert.Equal(t, big.NewInt(1), NewThreshold(1<<64-1).EstimatedAttempts())
}

func TestRange(t *testing.T) {
	r := NewRange([]byte{0x10, 0x00}, []byte{0x10, 0xff})
	assert.True(t, r.Matches([]byte{0x10, 0x80, 0x99}))
	assert.False(t, r.Matches([]byte{0x11, 0x00}))
	assert.Equal(t, big.NewInt(256), r.EstimatedAttempts())
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("ALGOXYZ", "AL.O", false))
	assert.True(t, HasPrefix("algoxyz", "AL*O", true))
	assert.False(t, HasPrefix("algoxyz", "ALGO", false))
	assert.False(t, HasPrefix("AL", "ALGO", false))
	assert.True(t, IsWildcardOnly(".*."))
	assert.False(t, IsWildcardOnly(".A"))
}

func TestPrefixTarget(t *testing.T) {
	c, err := CompileHex("ab*d", 0)
	require.NoError(t, err)
	target := NewPrefixTarget(c, "0x", true)

	assert.Equal(t, "0xab*d", target.Pattern())
	assert.False(t, target.Truncated())
	assert.True(t, target.Accepts("0xAB0D99"))
	assert.True(t, target.Accepts("0xabfd"))
	assert.False(t, target.Accepts("0xac0d"))
	assert.False(t, target.Accepts("ab0d"))
	assert.True(t, target.Matches([]byte{0xab, 0x7d}))

	c, err = CompileHex("abcdef", 4)
	require.NoError(t, err)
	target = NewPrefixTarget(c, "0x", true)
	assert.True(t, target.Truncated())
	assert.Equal(t, "0xabcd", target.Pattern())
}
