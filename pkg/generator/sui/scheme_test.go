package sui

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

const (
	rfcSeed    = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	rfcAddress = "0x304af458e90e97c841685b8cbbc59b909f3e2cf150df590ada4c81452c29737d"
)

func TestAccount(t *testing.T) {
	key, err := generator.ParseKeyMaterial(rfcSeed)
	require.NoError(t, err)
	acct, err := New().Account(key)
	require.NoError(t, err)
	assert.Equal(t, rfcAddress, acct.Address)

	acct, err = New().Account(generator.KeyMaterial{})
	require.NoError(t, err)
	assert.Equal(t, "0x7a1378aafadef8ce743b72e8b248295c8f61c102c94040161146ea4d51a182b6", acct.Address)
}

func TestPrivateKeyEncoding(t *testing.T) {
	key, err := generator.ParseKeyMaterial(rfcSeed)
	require.NoError(t, err)
	enc, err := EncodePrivateKey(key)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, PrivateKeyHRP+"1"))

	hrp, data, err := bech32.Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, PrivateKeyHRP, hrp)
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	require.NoError(t, err)
	require.Len(t, raw, 33)
	assert.Equal(t, byte(0), raw[0])
	assert.Equal(t, key[:], raw[1:])
}

func TestCompileAndAccept(t *testing.T) {
	s := New()
	key, _ := generator.ParseKeyMaterial(rfcSeed)
	id, ok := s.Identifier(&key, make([]byte, 0, 32))
	require.True(t, ok)

	for _, pattern := range []string{"304a", "0x304AF4", "30*af", ""} {
		target, err := s.Compile(pattern)
		require.NoError(t, err, pattern)
		assert.True(t, target.Matches(id), pattern)
		assert.True(t, target.Accepts(rfcAddress), pattern)
	}

	target, err := s.Compile("304b")
	require.NoError(t, err)
	assert.False(t, target.Matches(id))
	assert.False(t, target.Accepts(rfcAddress))

	_, err = s.Compile("30g")
	assert.Error(t, err)
}
