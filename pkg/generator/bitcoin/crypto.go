package bitcoin

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/Amr-9/VanityHunter/pkg/generator"
)

var errInvalidKey = errors.New("bitcoin: key is not a valid secp256k1 scalar")

// privateKey parses key material as a secp256k1 scalar. Zero and values
// at or above the group order are not valid private keys.
func privateKey(key *generator.KeyMaterial) (*btcec.PrivateKey, bool) {
	var s btcec.ModNScalar
	if overflow := s.SetBytes((*[32]byte)(key)); overflow != 0 || s.IsZero() {
		return nil, false
	}
	return btcec.PrivKeyFromScalar(&s), true
}

// PrivateKeyToWIF converts a private key to mainnet Wallet Import Format
// for a compressed public key (starts with K or L).
func PrivateKeyToWIF(privKey *btcec.PrivateKey) (string, error) {
	wif, err := btcutil.NewWIF(privKey, &chaincfg.MainNetParams, true)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}
