package lisk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/match"
)

func key(t *testing.T, s string) generator.KeyMaterial {
	t.Helper()
	k, err := generator.ParseKeyMaterial(s)
	require.NoError(t, err)
	return k
}

const rfcSeed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

func TestAddress(t *testing.T) {
	acct, err := New().Account(key(t, rfcSeed))
	require.NoError(t, err)
	assert.Equal(t, "7035278622117199393L", acct.Address)
	assert.Len(t, acct.PrivateKey, 128)
	assert.Empty(t, acct.Mnemonic)

	acct, err = New().Account(generator.KeyMaterial{})
	require.NoError(t, err)
	assert.Equal(t, "10472078485835324947L", acct.Address)
}

func TestCompile(t *testing.T) {
	s := New()
	for _, bad := range []string{"", "0", "21", "-3", "abc"} {
		_, err := s.Compile(bad)
		assert.ErrorIs(t, err, ErrInvalidLength, bad)
	}

	target, err := s.Compile("18")
	require.NoError(t, err)
	assert.Equal(t, uint64(6333333333333333327), target.(*Target).Max)
	assert.Equal(t, "at most 18 digits", target.Pattern())

	args := target.(generator.KernelMatcher).KernelArgs()
	assert.Equal(t, generator.KernelThreshold, args.Type)
	assert.Equal(t, uint64(6333333333333333327), args.Threshold)

	target, err = s.Compile("19")
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), target.(*Target).Max)
}

func TestMatchAndAccept(t *testing.T) {
	s := New()
	rfc := key(t, rfcSeed)
	zero := generator.KeyMaterial{}
	buf := make([]byte, 0, 32)

	rfcID, ok := s.Identifier(&rfc, buf)
	require.True(t, ok)
	assert.Equal(t, uint64(7035278622117199393), match.NumericValue(rfcID))

	t18, err := s.Compile("18")
	require.NoError(t, err)
	assert.False(t, t18.Matches(rfcID))

	t19, err := s.Compile("19")
	require.NoError(t, err)
	assert.True(t, t19.Matches(rfcID))
	assert.True(t, t19.Accepts("7035278622117199393L"))

	// The saturated threshold passes a 20-digit address; only the length
	// check rejects it.
	zeroID, _ := s.Identifier(&zero, nil)
	assert.True(t, t19.Matches(zeroID))
	assert.False(t, t19.Accepts("10472078485835324947L"))
}

func TestAcceptsRequiresSuffix(t *testing.T) {
	target, err := New().Compile("5")
	require.NoError(t, err)
	assert.True(t, target.Accepts("12345L"))
	assert.False(t, target.Accepts("123456L"))
	assert.False(t, target.Accepts("12345"))
	assert.False(t, target.Accepts("L"))
}
