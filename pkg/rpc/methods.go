package rpc

import "context"

// GasPrice returns the raw hex result of eth_gasPrice.
func GasPrice(ctx context.Context, c Client) (string, error) {
	return sendValue(ctx, c, MethodGasPrice)
}

// BlockNumber returns the raw hex result of eth_blockNumber.
func BlockNumber(ctx context.Context, c Client) (string, error) {
	return sendValue(ctx, c, MethodBlockNumber)
}

// BaseFee returns the raw hex baseFeePerGas of the block with the given
// number. The number is passed to the node verbatim.
func BaseFee(ctx context.Context, c Client, blockNumber string) (string, error) {
	return sendValue(ctx, c, MethodGetBlockByNumber, blockNumber, true)
}

func sendValue(ctx context.Context, c Client, method Method, params ...any) (string, error) {
	result, err := c.Send(ctx, method, params...)
	if err != nil {
		return "", err
	}
	return result.Value(), nil
}
