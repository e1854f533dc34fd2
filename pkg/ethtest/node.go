package ethtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"storj.io/crypto-gas-quote/pkg/rpc"
)

// Failure describes how the node misbehaves for a method.
type Failure int

const (
	// FailNone answers normally.
	FailNone Failure = iota
	// FailConnection drops the connection without a response.
	FailConnection
	// FailStatus answers with a 503.
	FailStatus
	// FailGarbage answers with a body that is not JSON.
	FailGarbage
)

// Node is a fake JSON-RPC node that answers eth_gasPrice, eth_blockNumber
// and eth_getBlockByNumber from canned values.
type Node struct {
	URL string

	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	gasPrice string
	number   string
	blocks   map[string]map[string]any
	failures map[rpc.Method]Failure
	calls    []rpc.Request
}

// NewNode starts a node whose latest block has the given number and base
// fee. The server is closed when the test finishes.
func NewNode(t *testing.T, gasPrice, blockNumber, baseFee string) *Node {
	n := &Node{
		t:        t,
		gasPrice: gasPrice,
		number:   blockNumber,
		blocks: map[string]map[string]any{
			blockNumber: {
				"number":        blockNumber,
				"baseFeePerGas": baseFee,
				"gasLimit":      "0x1c9c380",
				"gasUsed":       "0xe4e1c0",
				"transactions":  []any{},
			},
		},
		failures: make(map[rpc.Method]Failure),
	}
	n.server = httptest.NewServer(http.HandlerFunc(n.serveHTTP))
	n.URL = n.server.URL
	t.Cleanup(n.server.Close)
	return n
}

// SetBlock replaces the block returned for number.
func (n *Node) SetBlock(number string, block map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.blocks[number] = block
}

// Fail makes every call to method misbehave according to failure.
func (n *Node) Fail(method rpc.Method, failure Failure) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures[method] = failure
}

// Calls returns the requests received so far.
func (n *Node) Calls() []rpc.Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]rpc.Request(nil), n.calls...)
}

// Methods returns the methods received so far, in order.
func (n *Node) Methods() []rpc.Method {
	var methods []rpc.Method
	for _, call := range n.Calls() {
		methods = append(methods, call.Method)
	}
	return methods
}

func (n *Node) serveHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		n.t.Errorf("fake node: bad request body: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	n.calls = append(n.calls, req)
	failure := n.failures[req.Method]
	result, rpcErr := n.answer(req)
	n.mu.Unlock()

	switch failure {
	case FailConnection:
		hj, ok := w.(http.Hijacker)
		if !ok {
			n.t.Errorf("fake node: response writer cannot be hijacked")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			n.t.Errorf("fake node: hijack failed: %v", err)
			return
		}
		_ = conn.Close()
		return
	case FailStatus:
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	case FailGarbage:
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
		return
	}

	resp := map[string]any{
		"jsonrpc": rpc.Version,
		"id":      req.ID,
	}
	if rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (n *Node) answer(req rpc.Request) (any, *rpc.ResponseError) {
	switch req.Method {
	case rpc.MethodGasPrice:
		return n.gasPrice, nil
	case rpc.MethodBlockNumber:
		return n.number, nil
	case rpc.MethodGetBlockByNumber:
		if len(req.Params) != 2 {
			return nil, &rpc.ResponseError{Code: -32602, Message: "invalid params"}
		}
		number, _ := req.Params[0].(string)
		block, ok := n.blocks[number]
		if !ok {
			return nil, nil
		}
		return block, nil
	}
	return nil, &rpc.ResponseError{Code: -32601, Message: "the method " + string(req.Method) + " does not exist/is not available"}
}
