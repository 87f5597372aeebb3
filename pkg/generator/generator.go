// Package generator defines the shared vocabulary for vanity key search.
// Address schemes (Algorand, Lisk, Solana, ...) implement Scheme, and the CPU
// and GPU workers drive any Scheme through the same Matcher/Target contract.
package generator

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Network represents the address scheme a search targets.
type Network int

const (
	Algorand Network = iota // Algorand (Ed25519, Base32 + SHA-512/256 checksum)
	Lisk                    // Lisk legacy (Ed25519, SHA-256, numeric "L" address)
	Solana                  // Solana (Ed25519, Base58)
	Aptos                   // Aptos (Ed25519, SHA3-256, Hex)
	Ethereum                // Ethereum (secp256k1, Keccak-256, Hex)
	Bitcoin                 // Bitcoin Taproot (secp256k1, Bech32m)
	Sui                     // Sui (Ed25519, Blake2b-256, Hex)
)

// String returns the network name.
func (n Network) String() string {
	switch n {
	case Algorand:
		return "Algorand"
	case Lisk:
		return "Lisk"
	case Solana:
		return "Solana"
	case Aptos:
		return "Aptos"
	case Ethereum:
		return "Ethereum"
	case Bitcoin:
		return "Bitcoin"
	case Sui:
		return "Sui"
	default:
		return "Unknown"
	}
}

// ErrUnknownNetwork is returned by ParseNetwork for unsupported names.
var ErrUnknownNetwork = errors.New("unknown network")

// ParseNetwork maps a command-line network name to a Network.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "algorand", "algo":
		return Algorand, nil
	case "lisk", "lsk":
		return Lisk, nil
	case "solana", "sol":
		return Solana, nil
	case "aptos", "apt":
		return Aptos, nil
	case "ethereum", "eth":
		return Ethereum, nil
	case "bitcoin", "btc", "taproot":
		return Bitcoin, nil
	case "sui":
		return Sui, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

// Account is the user-facing rendering of a key.
type Account struct {
	Address    string // Formatted address
	PrivateKey string // Private key in the network's customary encoding
	Mnemonic   string // Recovery phrase, empty if the network has none
}

// Result contains a verified vanity match.
type Result struct {
	Network  Network
	Account  Account
	Source   string // "cpu" or "gpu"
	Found    uint64 // 1-based ordinal of this match
	Attempts uint64 // Attempts counter when the match was reported
}

// Stats holds real-time performance statistics.
type Stats struct {
	Attempts    uint64  // Total number of keys tried
	Found       uint64  // Verified matches so far
	HashRate    float64 // Keys per second
	ElapsedSecs float64 // Time elapsed since start
}

// Matcher is the fast filter run on every candidate. It must be safe for
// concurrent use and must not allocate.
type Matcher interface {
	// Matches reports whether the derived identifier bytes pass the filter.
	Matches(id []byte) bool

	// EstimatedAttempts is the expected number of uniformly random keys to
	// try before one passes.
	EstimatedAttempts() *big.Int
}

// Target is a compiled search pattern: the fast Matcher plus the
// authoritative check against the rendered address.
type Target interface {
	Matcher

	// Accepts reports whether a fully rendered address satisfies the
	// pattern the user asked for. Nothing is reported without it.
	Accepts(address string) bool

	// Pattern returns the pattern as the user will see it.
	Pattern() string
}

// Scheme derives and renders keys for one network.
type Scheme interface {
	Network() Network

	// Compile turns the user pattern into a Target.
	Compile(pattern string) (Target, error)

	// Identifier derives the bytes the Matcher examines, writing into buf
	// when possible. ok is false when the key is not valid for the curve.
	Identifier(key *KeyMaterial, buf []byte) (id []byte, ok bool)

	// Account renders the key for display.
	Account(key KeyMaterial) (Account, error)
}

// KernelArgs are the scalar and buffer arguments a GPU kernel needs to
// evaluate a Matcher on the device.
type KernelArgs struct {
	Type      uint8  // Matcher discriminator (KernelMask or KernelThreshold)
	Threshold uint64 // Numeric threshold, KernelThreshold only
	Required  []byte // Pre-masked required bytes, KernelMask only
	Mask      []byte // Mask bytes, KernelMask only
}

// Kernel matcher discriminators.
const (
	KernelMask      uint8 = 0
	KernelThreshold uint8 = 1
)

// KernelMatcher is implemented by matchers that can be evaluated on a GPU.
type KernelMatcher interface {
	KernelArgs() KernelArgs
}

// Reporter is the shared sink workers publish to. Implementations must be
// safe for concurrent use.
type Reporter interface {
	// AddAttempts adds n tried keys to the shared counter.
	AddAttempts(n uint64)

	// Report publishes a verified match. It returns false once the match
	// limit has already been reached, in which case res was not emitted
	// and the worker should stop.
	Report(res Result) bool
}

// Verify re-derives key and runs the authoritative check: the fast matcher
// and then Target.Accepts on the rendered address. ok is false for false
// positives and for keys the scheme rejects.
func Verify(s Scheme, t Target, key KeyMaterial) (acct Account, ok bool, err error) {
	id, valid := s.Identifier(&key, nil)
	if !valid || !t.Matches(id) {
		return Account{}, false, nil
	}
	acct, err = s.Account(key)
	if err != nil {
		return Account{}, false, err
	}
	return acct, t.Accepts(acct.Address), nil
}
