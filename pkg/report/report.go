// Package report renders a fee quote for people and for programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/kyokomi/emoji/v2"
	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"

	"storj.io/crypto-gas-quote/pkg/eth"
	"storj.io/crypto-gas-quote/pkg/fancy"
	"storj.io/crypto-gas-quote/pkg/fees"
)

type Options struct {
	Denom eth.Denom
	Color bool
}

var tierMarkers = map[fees.TierName]string{
	fees.TierSlow:     ":turtle:",
	fees.TierStandard: ":car:",
	fees.TierFast:     ":rocket:",
}

// Text writes a human readable summary of q.
func Text(w io.Writer, q fees.Quote, opts Options) {
	p := fancy.NewPrinter(w, opts.Color)
	amount := func(v *big.Int) string {
		return eth.UnitFromBigInt(v, opts.Denom).Decimal().String()
	}

	p.Println(fancy.Bold, "Fee quote for block ", q.BlockNumber, " (", hexutil.Uint64(q.BlockNumber), "), amounts in ", opts.Denom, " per gas")
	p.Infof("%-22s %s\n", "Gas price:", amount(q.GasPrice))
	p.Infof("%-22s %s\n", "Base fee:", amount(q.BaseFee))
	for _, tier := range q.Tiers() {
		// pad the name rather than the label: markers are one wide rune
		// but several bytes
		label := emoji.Sprint(tierMarkers[tier.Name]) + fmt.Sprintf("%-9s", tier.Name)
		p.Printf(fancy.Good, "%s priority %-12s max %s\n", label, amount(tier.GasTipCap), amount(tier.GasFeeCap))
	}
	if eth.UnitFromBigInt(q.BaseFee, opts.Denom).IsZero() {
		p.Warnf("Base fee is zero: the node may not support EIP-1559\n")
	}
}

type jsonQuote struct {
	Unit           string          `json:"unit"`
	BlockNumber    uint64          `json:"blockNumber"`
	BlockNumberHex hexutil.Uint64  `json:"blockNumberHex"`
	GasPrice       decimal.Decimal `json:"gasPrice"`
	BaseFee        decimal.Decimal `json:"baseFee"`
	Tiers          jsonTiers       `json:"tiers"`
}

type jsonTiers struct {
	Slow     jsonTier `json:"slow"`
	Standard jsonTier `json:"standard"`
	Fast     jsonTier `json:"fast"`
}

type jsonTier struct {
	PriorityFee decimal.Decimal `json:"priorityFee"`
	MaxFee      decimal.Decimal `json:"maxFee"`
}

// JSON writes q as a single indented JSON document. Amounts are decimal
// strings in denom.
func JSON(w io.Writer, q fees.Quote, denom eth.Denom) error {
	amount := func(v *big.Int) decimal.Decimal {
		return eth.UnitFromBigInt(v, denom).Decimal()
	}
	tier := func(t fees.Tier) jsonTier {
		return jsonTier{PriorityFee: amount(t.GasTipCap), MaxFee: amount(t.GasFeeCap)}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errs.Wrap(enc.Encode(jsonQuote{
		Unit:           denom.String(),
		BlockNumber:    q.BlockNumber,
		BlockNumberHex: hexutil.Uint64(q.BlockNumber),
		GasPrice:       amount(q.GasPrice),
		BaseFee:        amount(q.BaseFee),
		Tiers: jsonTiers{
			Slow:     tier(q.Slow),
			Standard: tier(q.Standard),
			Fast:     tier(q.Fast),
		},
	}))
}
