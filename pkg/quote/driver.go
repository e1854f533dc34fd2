// Package quote fetches the inputs of a fee quote from a node and computes
// it.
package quote

import (
	"context"
	"fmt"
	"io"

	"github.com/zeebo/errs/v2"
	"go.uber.org/zap"

	"storj.io/crypto-gas-quote/pkg/fees"
	"storj.io/crypto-gas-quote/pkg/hexnum"
	"storj.io/crypto-gas-quote/pkg/rpc"
)

type Options struct {
	// Multipliers default to fees.DefaultMultipliers when zero.
	Multipliers fees.Multipliers

	// Progress receives one line per raw value fetched from the node.
	Progress io.Writer

	Log *zap.Logger
}

type Driver struct {
	client      rpc.Client
	multipliers fees.Multipliers
	progress    io.Writer
	log         *zap.Logger
}

func New(client rpc.Client, opts Options) *Driver {
	d := &Driver{
		client:      client,
		multipliers: opts.Multipliers,
		progress:    opts.Progress,
		log:         opts.Log,
	}
	if d.multipliers == (fees.Multipliers{}) {
		d.multipliers = fees.DefaultMultipliers()
	}
	if d.progress == nil {
		d.progress = io.Discard
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	return d
}

// Run fetches the gas price, the latest block number and that block's base
// fee, in that order, and computes the quote. It stops at the first error.
func (d *Driver) Run(ctx context.Context) (fees.Quote, error) {
	rawGasPrice, err := rpc.GasPrice(ctx, d.client)
	if err != nil {
		return fees.Quote{}, errs.Errorf("failed to fetch gas price: %w", err)
	}
	d.printf("Gas price: %s\n", rawGasPrice)

	rawBlockNumber, err := rpc.BlockNumber(ctx, d.client)
	if err != nil {
		return fees.Quote{}, errs.Errorf("failed to fetch block number: %w", err)
	}
	d.printf("Block number: %s\n", rawBlockNumber)

	rawBaseFee, err := rpc.BaseFee(ctx, d.client, rawBlockNumber)
	if err != nil {
		return fees.Quote{}, errs.Errorf("failed to fetch base fee of block %s: %w", rawBlockNumber, err)
	}
	d.printf("Base fee: %s\n", rawBaseFee)

	gasPrice, err := hexnum.ToBigInt(rawGasPrice)
	if err != nil {
		return fees.Quote{}, errs.Errorf("invalid gas price: %w", err)
	}
	blockNumber, err := hexnum.ToUint64(rawBlockNumber)
	if err != nil {
		return fees.Quote{}, errs.Errorf("invalid block number: %w", err)
	}
	baseFee, err := hexnum.ToBigInt(rawBaseFee)
	if err != nil {
		return fees.Quote{}, errs.Errorf("invalid base fee: %w", err)
	}

	q := fees.NewQuote(gasPrice, baseFee, blockNumber, d.multipliers)
	d.log.Debug("Computed fee quote",
		zap.Uint64("block", q.BlockNumber),
		zap.Stringer("gas_price", q.GasPrice),
		zap.Stringer("base_fee", q.BaseFee),
		zap.Stringer("slow", q.Slow.GasFeeCap),
		zap.Stringer("standard", q.Standard.GasFeeCap),
		zap.Stringer("fast", q.Fast.GasFeeCap))
	return q, nil
}

func (d *Driver) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(d.progress, format, args...)
}
