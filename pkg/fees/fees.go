// Package fees turns an observed gas price and base fee into slow,
// standard and fast EIP-1559 fee suggestions. All amounts are in wei.
package fees

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"

	"storj.io/crypto-gas-quote/pkg/txparams"
)

var Error = errs.Class("fees")

// Multipliers are applied to the observed gas price to derive the priority
// fee of each tier.
type Multipliers struct {
	Slow     decimal.Decimal `toml:"slow"`
	Standard decimal.Decimal `toml:"standard"`
	Fast     decimal.Decimal `toml:"fast"`
}

var (
	DefaultSlowMultiplier     = decimal.RequireFromString("0.8")
	DefaultStandardMultiplier = decimal.RequireFromString("1.0")
	DefaultFastMultiplier     = decimal.RequireFromString("1.2")
)

func DefaultMultipliers() Multipliers {
	return Multipliers{
		Slow:     DefaultSlowMultiplier,
		Standard: DefaultStandardMultiplier,
		Fast:     DefaultFastMultiplier,
	}
}

func (m Multipliers) Validate() error {
	for _, tier := range []struct {
		name  TierName
		value decimal.Decimal
	}{
		{TierSlow, m.Slow},
		{TierStandard, m.Standard},
		{TierFast, m.Fast},
	} {
		if tier.value.IsNegative() {
			return Error.New("%s multiplier must not be negative: %s", tier.name, tier.value)
		}
	}
	if m.Slow.GreaterThan(m.Standard) || m.Standard.GreaterThan(m.Fast) {
		return Error.New("multipliers must satisfy slow <= standard <= fast: got %s, %s, %s", m.Slow, m.Standard, m.Fast)
	}
	return nil
}

// ComputeTiers multiplies gasPrice by each tier multiplier. The results are
// exact.
func ComputeTiers(gasPrice decimal.Decimal, m Multipliers) (slow, standard, fast decimal.Decimal) {
	return gasPrice.Mul(m.Slow), gasPrice.Mul(m.Standard), gasPrice.Mul(m.Fast)
}

type TierName string

const (
	TierSlow     TierName = "slow"
	TierStandard TierName = "standard"
	TierFast     TierName = "fast"
)

// Tier is a named suggestion. GasTipCap is the priority fee and GasFeeCap
// the max fee.
type Tier struct {
	Name TierName
	txparams.GasCaps
}

type Quote struct {
	BlockNumber uint64
	GasPrice    *big.Int
	BaseFee     *big.Int

	Slow     Tier
	Standard Tier
	Fast     Tier
}

// Tiers returns the tiers from slowest to fastest.
func (q Quote) Tiers() []Tier {
	return []Tier{q.Slow, q.Standard, q.Fast}
}

// NewQuote computes the fee tiers for gasPrice and adds baseFee to each to
// get its max fee. Fractional wei are truncated from priority fees.
func NewQuote(gasPrice, baseFee *big.Int, blockNumber uint64, m Multipliers) Quote {
	slow, standard, fast := ComputeTiers(decimal.NewFromBigInt(gasPrice, 0), m)
	return Quote{
		BlockNumber: blockNumber,
		GasPrice:    new(big.Int).Set(gasPrice),
		BaseFee:     new(big.Int).Set(baseFee),
		Slow:        newTier(TierSlow, slow, baseFee),
		Standard:    newTier(TierStandard, standard, baseFee),
		Fast:        newTier(TierFast, fast, baseFee),
	}
}

func newTier(name TierName, priorityFee decimal.Decimal, baseFee *big.Int) Tier {
	return Tier{
		Name:    name,
		GasCaps: txparams.NewGasCaps(priorityFee.Truncate(0).BigInt(), baseFee),
	}
}
