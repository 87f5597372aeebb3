package search

import (
	"fmt"

	"github.com/Amr-9/VanityHunter/pkg/generator"
	"github.com/Amr-9/VanityHunter/pkg/generator/algorand"
	"github.com/Amr-9/VanityHunter/pkg/generator/aptos"
	"github.com/Amr-9/VanityHunter/pkg/generator/bitcoin"
	"github.com/Amr-9/VanityHunter/pkg/generator/ethereum"
	"github.com/Amr-9/VanityHunter/pkg/generator/lisk"
	"github.com/Amr-9/VanityHunter/pkg/generator/solana"
	"github.com/Amr-9/VanityHunter/pkg/generator/sui"
)

// NewScheme returns the scheme for a network.
func NewScheme(n generator.Network) (generator.Scheme, error) {
	switch n {
	case generator.Algorand:
		return algorand.New(), nil
	case generator.Lisk:
		return lisk.New(), nil
	case generator.Solana:
		return solana.New(), nil
	case generator.Aptos:
		return aptos.New(), nil
	case generator.Ethereum:
		return ethereum.New(), nil
	case generator.Bitcoin:
		return bitcoin.New(), nil
	case generator.Sui:
		return sui.New(), nil
	}
	return nil, fmt.Errorf("%w: %d", generator.ErrUnknownNetwork, int(n))
}

// HasKernel reports whether the OpenCL kernel implements a network.
func HasKernel(n generator.Network) bool {
	return n == generator.Algorand || n == generator.Lisk
}
