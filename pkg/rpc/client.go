package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Client interface {
	Send(ctx context.Context, method Method, params ...any) (Result, error)
}

type Option func(*client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.http = httpClient
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *client) {
		c.log = log
	}
}

func NewClient(endpoint string, opts ...Option) Client {
	c := &client{
		endpoint: endpoint,
		http:     http.DefaultClient,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type client struct {
	endpoint string
	http     *http.Client
	log      *zap.Logger
}

func (c *client) Send(ctx context.Context, method Method, params ...any) (Result, error) {
	body, err := json.Marshal(NewRequest(method, params...))
	if err != nil {
		return nil, DecodeError.Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, ConnectionError.Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ConnectionError.Wrap(err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("RPC call",
		zap.Stringer("method", method),
		zap.ByteString("request", body),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ConnectionError.New("%s: expected 2xx status code but got %d: %s", method, resp.StatusCode, tryRead(resp.Body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ConnectionError.Wrap(err)
	}

	return parseResponse(method, data)
}

func parseResponse(method Method, data []byte) (Result, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, DecodeError.New("%s: %v", method, err)
	}
	if resp.Error != nil {
		return nil, RemoteError.New("%s: %v", method, resp.Error)
	}
	if isNull(resp.Result) {
		return nil, MissingFieldError.New("%s: result", method)
	}

	field := method.resultField()
	if field == "" {
		var s string
		if err := json.Unmarshal(resp.Result, &s); err != nil {
			return nil, DecodeError.New("%s: result is not a string: %v", method, err)
		}
		return ScalarResult(s), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(resp.Result, &obj); err != nil {
		return nil, DecodeError.New("%s: result is not an object: %v", method, err)
	}
	raw, ok := obj[field]
	if !ok || isNull(raw) {
		return nil, MissingFieldError.New("%s: result.%s", method, field)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, DecodeError.New("%s: result.%s is not a string: %v", method, field, err)
	}
	return ObjectField{Name: field, Data: s}, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func tryRead(r io.Reader) string {
	b := make([]byte, 256)
	n, _ := r.Read(b)
	return string(b[:n])
}
