package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/hilthontt/roombook/internal/infrastructure/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultRetryInterval = 200 * time.Millisecond
	maxResponseBytes     = 4 << 20
)

type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors Errors          `json:"errors"`
}

// Client speaks GraphQL over HTTP POST to a single endpoint.
type Client struct {
	endpoint      string
	httpClient    HTTPDoer
	maxRetries    uint
	timeout       time.Duration
	retryInterval time.Duration
	logger        logging.Logger
}

func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:      endpoint,
		timeout:       defaultTimeout,
		retryInterval: defaultRetryInterval,
		logger:        logging.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return c
}

// Query runs a read operation, retrying transport failures and 5xx responses
// with exponential backoff. The token is sent as is in the Authorization header
// when not empty.
func (c *Client) Query(ctx context.Context, token string, req Request, out any) error {
	operation := func() (struct{}, error) {
		err := c.do(ctx, token, req, out)
		if err != nil && !retryable(ctx, err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.maxRetries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn(logging.Upstream, logging.GraphQL, "retrying upstream query", map[logging.ExtraKey]any{
				logging.Operation:    req.OperationName,
				logging.ErrorMessage: err.Error(),
				logging.Latency:      next.String(),
			})
		}),
	)
	return err
}

// Mutate runs a write operation exactly once.
func (c *Client) Mutate(ctx context.Context, token string, req Request, out any) error {
	return c.do(ctx, token, req, out)
}

func (c *Client) do(ctx context.Context, token string, req Request, out any) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("graphql: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("graphql: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("graphql: %s: %w", req.OperationName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("graphql: read response: %w", err)
	}

	var decoded response
	decodeErr := json.Unmarshal(body, &decoded)

	if decodeErr == nil && len(decoded.Errors) > 0 {
		return decoded.Errors
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	if decodeErr != nil {
		return fmt.Errorf("graphql: decode response: %w", decodeErr)
	}

	if out == nil || len(decoded.Data) == 0 || string(decoded.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return fmt.Errorf("graphql: decode data: %w", err)
	}

	return nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var gqlErrs Errors
	if errors.As(err, &gqlErrs) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 || statusErr.StatusCode == http.StatusTooManyRequests
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return false
	}

	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
