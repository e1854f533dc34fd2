package quote_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"storj.io/common/testcontext"

	"storj.io/crypto-gas-quote/pkg/ethtest"
	"storj.io/crypto-gas-quote/pkg/fees"
	"storj.io/crypto-gas-quote/pkg/hexnum"
	"storj.io/crypto-gas-quote/pkg/quote"
	"storj.io/crypto-gas-quote/pkg/rpc"
)

func TestRun(t *testing.T) {
	ctx := testcontext.New(t)
	node := ethtest.NewNode(t, "0x3b9aca00", "0x12d687", "0x1dcd6500")

	var progress bytes.Buffer
	driver := quote.New(rpc.NewClient(node.URL), quote.Options{
		Progress: &progress,
		Log:      zaptest.NewLogger(t),
	})

	q, err := driver.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, uint64(1234567), q.BlockNumber)
	assert.Equal(t, "1000000000", q.GasPrice.String())
	assert.Equal(t, "500000000", q.BaseFee.String())
	assert.Equal(t, "800000000", q.Slow.GasTipCap.String())
	assert.Equal(t, "1300000000", q.Slow.GasFeeCap.String())
	assert.Equal(t, "1000000000", q.Standard.GasTipCap.String())
	assert.Equal(t, "1500000000", q.Standard.GasFeeCap.String())
	assert.Equal(t, "1200000000", q.Fast.GasTipCap.String())
	assert.Equal(t, "1700000000", q.Fast.GasFeeCap.String())

	assert.Equal(t, "Gas price: 0x3b9aca00\nBlock number: 0x12d687\nBase fee: 0x1dcd6500\n", progress.String())

	assert.Equal(t, []rpc.Method{
		rpc.MethodGasPrice,
		rpc.MethodBlockNumber,
		rpc.MethodGetBlockByNumber,
	}, node.Methods())
	calls := node.Calls()
	assert.Empty(t, calls[0].Params)
	assert.Empty(t, calls[1].Params)
	assert.Equal(t, []any{"0x12d687", true}, calls[2].Params)
}

func TestRunCustomMultipliers(t *testing.T) {
	ctx := testcontext.New(t)
	node := ethtest.NewNode(t, "0x64", "0x1", "0xa")

	driver := quote.New(rpc.NewClient(node.URL), quote.Options{
		Multipliers: fees.Multipliers{
			Slow:     decimal.RequireFromString("0.5"),
			Standard: decimal.RequireFromString("1"),
			Fast:     decimal.RequireFromString("3"),
		},
	})

	q, err := driver.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "60", q.Slow.GasFeeCap.String())
	assert.Equal(t, "110", q.Standard.GasFeeCap.String())
	assert.Equal(t, "310", q.Fast.GasFeeCap.String())
}

func TestRunBaseFeeBeyondUint64(t *testing.T) {
	ctx := testcontext.New(t)
	node := ethtest.NewNode(t, "0x10000000000000000", "0x1", "0x10000000000000000")

	q, err := quote.New(rpc.NewClient(node.URL), quote.Options{}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", q.BaseFee.String())
	assert.Equal(t, "36893488147419103232", q.Standard.GasFeeCap.String())
}

func TestRunAbortsOnTransportFailure(t *testing.T) {
	for _, tc := range []struct {
		method rpc.Method
		calls  int
	}{
		{rpc.MethodGasPrice, 1},
		{rpc.MethodBlockNumber, 2},
		{rpc.MethodGetBlockByNumber, 3},
	} {
		for _, failure := range []ethtest.Failure{ethtest.FailConnection, ethtest.FailStatus} {
			t.Run(string(tc.method), func(t *testing.T) {
				ctx := testcontext.New(t)
				node := ethtest.NewNode(t, "0x3b9aca00", "0x10", "0x1dcd6500")
				node.Fail(tc.method, failure)

				q, err := quote.New(rpc.NewClient(node.URL), quote.Options{}).Run(ctx)
				require.Error(t, err)
				assert.True(t, rpc.ConnectionError.Has(err), "unexpected error: %+v", err)
				assert.Zero(t, q)
				assert.Len(t, node.Calls(), tc.calls)
			})
		}
	}
}

func TestRunAbortsOnGarbage(t *testing.T) {
	ctx := testcontext.New(t)
	node := ethtest.NewNode(t, "0x3b9aca00", "0x10", "0x1dcd6500")
	node.Fail(rpc.MethodBlockNumber, ethtest.FailGarbage)

	_, err := quote.New(rpc.NewClient(node.URL), quote.Options{}).Run(ctx)
	require.Error(t, err)
	assert.True(t, rpc.DecodeError.Has(err))
}

func TestRunMissingBaseFee(t *testing.T) {
	ctx := testcontext.New(t)
	node := ethtest.NewNode(t, "0x3b9aca00", "0x10", "0x1dcd6500")
	node.SetBlock("0x10", map[string]any{"number": "0x10"})

	_, err := quote.New(rpc.NewClient(node.URL), quote.Options{}).Run(ctx)
	require.Error(t, err)
	assert.True(t, rpc.MissingFieldError.Has(err), "unexpected error: %+v", err)
	assert.Contains(t, err.Error(), "baseFeePerGas")
}

func TestRunDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name        string
		gasPrice    string
		blockNumber string
		baseFee     string
	}{
		{"gas price", "0xzz", "0x10", "0x1"},
		{"block number", "0x1", "0x10000000000000000", "0x1"},
		{"base fee", "0x1", "0x10", "0x"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := testcontext.New(t)
			node := ethtest.NewNode(t, tc.gasPrice, tc.blockNumber, tc.baseFee)

			var progress bytes.Buffer
			q, err := quote.New(rpc.NewClient(node.URL), quote.Options{Progress: &progress}).Run(ctx)
			require.Error(t, err)
			assert.True(t, hexnum.Error.Has(err), "unexpected error: %+v", err)
			assert.Contains(t, err.Error(), tc.name)
			assert.Zero(t, q)
		})
	}
}
