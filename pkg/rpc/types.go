package rpc

import (
	"encoding/json"
	"fmt"
)

const (
	Version = "2.0"

	// RequestID is constant since only one request is ever in flight.
	RequestID = 1
)

type Method string

const (
	MethodGasPrice         Method = "eth_gasPrice"
	MethodBlockNumber      Method = "eth_blockNumber"
	MethodGetBlockByNumber Method = "eth_getBlockByNumber"
)

// FieldBaseFee is the block field returned for MethodGetBlockByNumber.
const FieldBaseFee = "baseFeePerGas"

// resultField returns the name of the object field to extract from the
// result of m, or "" if the result is a plain string.
func (m Method) resultField() string {
	switch m {
	case MethodGetBlockByNumber:
		return FieldBaseFee
	default:
		return ""
	}
}

func (m Method) String() string { return string(m) }

type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  Method `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

func NewRequest(method Method, params ...any) Request {
	if params == nil {
		params = []any{}
	}
	return Request{
		JSONRPC: Version,
		Method:  method,
		Params:  params,
		ID:      RequestID,
	}
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *ResponseError  `json:"error"`
}

type ResponseError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Message)
}

// Result is either a ScalarResult or an ObjectField.
type Result interface {
	Value() string
	isResult()
}

// ScalarResult is a result that was a plain JSON string.
type ScalarResult string

func (r ScalarResult) Value() string { return string(r) }
func (ScalarResult) isResult() {}

// ObjectField is a single string field pulled out of an object result.
type ObjectField struct {
	Name string
	Data string
}

func (r ObjectField) Value() string { return r.Data }
func (ObjectField) isResult() {}
