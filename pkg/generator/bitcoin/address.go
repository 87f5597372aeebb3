package bitcoin

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	hrp            = "bc"
	witnessVersion = 0x01
	AddressLead    = hrp + "1p" // Every mainnet P2TR address starts with this
)

var tapTweakTag = sha256.Sum256([]byte("TapTweak"))

// OutputKey computes the BIP-341 key-path output key for an internal key:
// Q = lift_x(P) + TaggedHash("TapTweak", x(P))*G, serialized x-only.
func OutputKey(pubKey *btcec.PublicKey) [32]byte {
	xOnly := schnorr.SerializePubKey(pubKey)
	tweak := taprootTweak(xOnly)

	var tweakScalar btcec.ModNScalar
	tweakScalar.SetBytes(&tweak)

	var result btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&tweakScalar, &result)

	// The internal key is the even-Y point with this x coordinate.
	var internal btcec.JacobianPoint
	pubKey.AsJacobian(&internal)
	if internal.Y.IsOdd() {
		internal.Y.Negate(1)
		internal.Y.Normalize()
	}

	btcec.AddNonConst(&internal, &result, &result)
	result.ToAffine()

	var out [32]byte
	result.X.PutBytes(&out)
	return out
}

// taprootTweak computes TaggedHash("TapTweak", pubkey_x) for a key-path
// only output (no script tree).
func taprootTweak(pubKeyX []byte) [32]byte {
	h := sha256.New()
	h.Write(tapTweakTag[:])
	h.Write(tapTweakTag[:])
	h.Write(pubKeyX)

	var out [32]byte
	h.Sum(out[:0])
	return out
}

// EncodeAddress renders a Bech32m P2TR address from an x-only output key.
func EncodeAddress(outputKey []byte) (string, error) {
	data, err := bech32.ConvertBits(outputKey, 8, 5, true)
	if err != nil {
		return "", err
	}
	data = append([]byte{witnessVersion}, data...)
	return bech32.EncodeM(hrp, data)
}
