package algorand

import (
	"crypto/sha512"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

const (
	bitsPerWord   = 11
	MnemonicWords = 25 // 24 data words + 1 checksum word
)

// Mnemonic encodes a 32-byte seed as Algorand's 25-word recovery phrase:
// the key split into little-endian 11-bit words from the BIP-39 English
// list, followed by a checksum word taken from SHA-512/256(key).
func Mnemonic(seed []byte) (string, error) {
	if len(seed) != 32 {
		return "", fmt.Errorf("mnemonic key must be 32 bytes, got %d", len(seed))
	}
	wordlist := bip39.GetWordList()

	words := make([]string, 0, MnemonicWords)
	for _, idx := range toUint11(seed) {
		words = append(words, wordlist[idx])
	}
	sum := sha512.Sum512_256(seed)
	words = append(words, wordlist[toUint11(sum[:2])[0]])
	return strings.Join(words, " "), nil
}

// toUint11 packs bytes into 11-bit values, least significant bit first.
func toUint11(data []byte) []uint32 {
	var (
		buffer  uint32
		numBits uint32
		out     = make([]uint32, 0, (len(data)*8+bitsPerWord-1)/bitsPerWord)
	)
	for _, b := range data {
		buffer |= uint32(b) << numBits
		numBits += 8
		if numBits >= bitsPerWord {
			out = append(out, buffer&0x7ff)
			buffer >>= bitsPerWord
			numBits -= bitsPerWord
		}
	}
	if numBits != 0 {
		out = append(out, buffer&0x7ff)
	}
	return out
}
