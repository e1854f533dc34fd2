package fees_test

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/crypto-gas-quote/pkg/fees"
	"storj.io/crypto-gas-quote/pkg/hexnum"
)

func TestComputeTiers(t *testing.T) {
	slow, standard, fast := fees.ComputeTiers(decimal.NewFromInt(100), fees.DefaultMultipliers())
	assert.True(t, slow.Equal(decimal.NewFromInt(80)), slow.String())
	assert.True(t, standard.Equal(decimal.NewFromInt(100)), standard.String())
	assert.True(t, fast.Equal(decimal.NewFromInt(120)), fast.String())
}

func TestComputeTiersCustomMultipliers(t *testing.T) {
	m := fees.Multipliers{
		Slow:     decimal.RequireFromString("0.5"),
		Standard: decimal.RequireFromString("1.1"),
		Fast:     decimal.RequireFromString("2"),
	}
	slow, standard, fast := fees.ComputeTiers(decimal.RequireFromString("7"), m)
	assert.Equal(t, "3.5", slow.String())
	assert.Equal(t, "7.7", standard.String())
	assert.Equal(t, "14", fast.String())
}

func TestNewQuote(t *testing.T) {
	gasPrice, err := hexnum.ToBigInt("0x3b9aca00")
	require.NoError(t, err)
	baseFee, err := hexnum.ToBigInt("0x1dcd6500")
	require.NoError(t, err)

	q := fees.NewQuote(gasPrice, baseFee, 16, fees.DefaultMultipliers())

	assert.Equal(t, uint64(16), q.BlockNumber)
	assert.Equal(t, "1000000000", q.GasPrice.String())
	assert.Equal(t, "500000000", q.BaseFee.String())

	for _, tc := range []struct {
		tier        fees.Tier
		name        fees.TierName
		priorityFee string
		maxFee      string
	}{
		{q.Slow, fees.TierSlow, "800000000", "1300000000"},
		{q.Standard, fees.TierStandard, "1000000000", "1500000000"},
		{q.Fast, fees.TierFast, "1200000000", "1700000000"},
	} {
		assert.Equal(t, tc.name, tc.tier.Name)
		assert.Equal(t, tc.priorityFee, tc.tier.GasTipCap.String(), tc.name)
		assert.Equal(t, tc.maxFee, tc.tier.GasFeeCap.String(), tc.name)
	}

	assert.Equal(t, []fees.Tier{q.Slow, q.Standard, q.Fast}, q.Tiers())
}

func TestNewQuoteTruncatesFractionalWei(t *testing.T) {
	q := fees.NewQuote(big.NewInt(7), big.NewInt(10), 1, fees.DefaultMultipliers())
	assert.Equal(t, "5", q.Slow.GasTipCap.String())
	assert.Equal(t, "15", q.Slow.GasFeeCap.String())
	assert.Equal(t, "7", q.Standard.GasTipCap.String())
	assert.Equal(t, "8", q.Fast.GasTipCap.String())
	assert.Equal(t, "18", q.Fast.GasFeeCap.String())
}

func TestNewQuoteBeyondUint64(t *testing.T) {
	gasPrice, err := hexnum.ToBigInt("0x100000000000000000")
	require.NoError(t, err)
	q := fees.NewQuote(gasPrice, big.NewInt(1), 1, fees.DefaultMultipliers())
	assert.Equal(t, "354177486215223391027", q.Fast.GasTipCap.String())
	assert.Equal(t, "354177486215223391028", q.Fast.GasFeeCap.String())
}

func TestNewQuoteDoesNotAliasInputs(t *testing.T) {
	gasPrice := big.NewInt(100)
	baseFee := big.NewInt(10)
	q := fees.NewQuote(gasPrice, baseFee, 1, fees.DefaultMultipliers())
	gasPrice.SetInt64(0)
	baseFee.SetInt64(0)
	assert.Equal(t, "100", q.GasPrice.String())
	assert.Equal(t, "10", q.BaseFee.String())
	assert.Equal(t, "110", q.Standard.GasFeeCap.String())
}

func TestMultipliersValidate(t *testing.T) {
	require.NoError(t, fees.DefaultMultipliers().Validate())

	negative := fees.DefaultMultipliers()
	negative.Slow = decimal.RequireFromString("-0.1")
	err := negative.Validate()
	require.Error(t, err)
	assert.True(t, fees.Error.Has(err))
	assert.Contains(t, err.Error(), "slow multiplier must not be negative")

	unordered := fees.DefaultMultipliers()
	unordered.Fast = decimal.RequireFromString("0.9")
	err = unordered.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slow <= standard <= fast")
}
