package txparams

import (
	"math/big"
)

// GasCaps are the EIP-1559 fee caps suggested for a transaction, in WEI per
// gas.
type GasCaps struct {
	// GasFeeCap is the EIP-1559 max fee: GasTipCap plus the block's base fee.
	GasFeeCap *big.Int

	// GasTipCap is the EIP-1559 priority fee.
	GasTipCap *big.Int
}

// NewGasCaps returns caps with tip as the priority fee and tip plus baseFee as
// the max fee. The inputs are not retained.
func NewGasCaps(tip, baseFee *big.Int) GasCaps {
	return GasCaps{
		GasFeeCap: new(big.Int).Add(tip, baseFee),
		GasTipCap: new(big.Int).Set(tip),
	}
}
