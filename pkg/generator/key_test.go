package generator

import (
	"bytes"
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toBig(k KeyMaterial) *big.Int { return new(big.Int).SetBytes(k[:]) }

func TestIncrement_Wraps(t *testing.T) {
	var k KeyMaterial
	for i := range k {
		k[i] = 0xff
	}
	k.Increment()
	assert.True(t, k.IsZero())
}

func TestIncrement_Carry(t *testing.T) {
	var k KeyMaterial
	k[30] = 0x01
	k[31] = 0xff
	k.Increment()
	assert.Equal(t, byte(0x02), k[30])
	assert.Equal(t, byte(0x00), k[31])
}

func TestIncrement_AgreesWithBigInt(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	modulus := new(big.Int).Lsh(big.NewInt(1), 256)
	for trial := 0; trial < 50; trial++ {
		var k KeyMaterial
		rng.Read(k[:])
		// Push some trials into long carry chains.
		if trial%5 == 0 {
			for i := 16; i < KeySize; i++ {
				k[i] = 0xff
			}
		}
		n := 1 + rng.Intn(1000)
		want := toBig(k)
		want.Add(want, big.NewInt(int64(n)))
		want.Mod(want, modulus)

		inc := k
		for i := 0; i < n; i++ {
			inc.Increment()
		}
		assert.Equal(t, 0, want.Cmp(toBig(inc)), "increment x%d", n)
	}
}

func TestRandomize(t *testing.T) {
	var k KeyMaterial
	src := bytes.Repeat([]byte{0xab}, KeySize)
	require.NoError(t, k.Randomize(bytes.NewReader(src)))
	assert.Equal(t, src, k[:])

	err := k.Randomize(bytes.NewReader([]byte{1, 2, 3}))
	assert.True(t, errors.Is(err, ErrEntropy))

	require.NoError(t, k.Randomize(nil))
}

func TestStringAndParse(t *testing.T) {
	var k KeyMaterial
	k[0], k[31] = 0xab, 0x01
	s := k.String()
	assert.Len(t, s, 64)
	assert.Equal(t, "AB", s[:2])

	parsed, err := ParseKeyMaterial(s)
	require.NoError(t, err)
	assert.Equal(t, k, parsed)

	_, err = ParseKeyMaterial("abcd")
	assert.Error(t, err)
}

func TestParseNetwork(t *testing.T) {
	tests := map[string]Network{
		"algorand": Algorand,
		"ALGO":     Algorand,
		"lisk":     Lisk,
		"sol":      Solana,
		"aptos":    Aptos,
		"eth":      Ethereum,
		"taproot":  Bitcoin,
		"sui":      Sui,
	}
	for name, want := range tests {
		got, err := ParseNetwork(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}
	_, err := ParseNetwork("dogecoin")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
	assert.Equal(t, "Lisk", Lisk.String())
}
