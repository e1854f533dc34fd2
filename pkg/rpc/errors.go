package rpc

import "github.com/zeebo/errs"

var (
	// ConnectionError is returned when the node could not be reached or
	// answered with a non-2xx status.
	ConnectionError = errs.Class("rpc connection")

	// DecodeError is returned when the response body is not the JSON that
	// was expected.
	DecodeError = errs.Class("rpc decode")

	// MissingFieldError is returned when the response is well formed but the
	// expected result or field is absent or null.
	MissingFieldError = errs.Class("rpc missing field")

	// RemoteError is returned when the node answered with a JSON-RPC error
	// object.
	RemoteError = errs.Class("rpc remote")
)
