package tableapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"transitboard.dev/transit/metrics"
)

const (
	DefaultTimeout     = 15 * time.Second
	DefaultMaxAttempts = 3
	DefaultBatchSize   = 80
	DefaultMaxInFlight = 4

	jitterFactor = 0.25
)

// Vars so tests can shrink the delays.
var (
	baseBackoff = 2 * time.Second
	maxBackoff  = 10 * time.Second
)

// Config for a Client. BaseURL and APIKey are required, everything
// else has a sensible default.
type Config struct {
	BaseURL string
	APIKey  string

	// Per attempt time bound.
	Timeout time.Duration

	// Total attempts per request, including the first.
	MaxAttempts int

	// Max number of ids per request in an id-set fetch. The remote
	// side encodes id lists on the request line, which has a
	// practical length limit.
	BatchSize int

	// Max concurrent requests during a batched id-set fetch.
	MaxInFlight int

	Logger     zerolog.Logger
	HTTPClient *http.Client
}

// Client issues bounded, read only calls against the remote table
// API. All methods are safe for concurrent use; the client holds no
// mutable state.
type Client struct {
	baseURL     string
	apiKey      string
	timeout     time.Duration
	maxAttempts int
	batchSize   int
	maxInFlight int
	logger      zerolog.Logger
	httpClient  *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.MaxInFlight == 0 {
		cfg.MaxInFlight = DefaultMaxInFlight
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = NewPooledClient()
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		timeout:     cfg.Timeout,
		maxAttempts: cfg.MaxAttempts,
		batchSize:   cfg.BatchSize,
		maxInFlight: cfg.MaxInFlight,
		logger:      cfg.Logger,
		httpClient:  cfg.HTTPClient,
	}, nil
}

// Rows fetches all rows of table matching the query, decoded into T.
func Rows[T any](ctx context.Context, c *Client, table string, q Query) ([]T, error) {
	u := c.baseURL + "/rest/v1/" + table
	params := q.encode()
	if params != "" {
		u += "?" + params
	}

	body, err := c.do(ctx, http.MethodGet, u, nil, table, params)
	if err != nil {
		return nil, err
	}

	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &Error{Kind: KindMalformed, Target: table, Params: params, Err: err}
	}
	return rows, nil
}

// RowsByIDSet fetches all rows of table where column is in ids,
// splitting the id set into bounded batches and concatenating the
// results. Batches are issued concurrently, a handful at a time. If
// any batch fails the whole fetch fails; the remote side keeps no
// partial state, so this is safe to retry wholesale.
func RowsByIDSet[T any](ctx context.Context, c *Client, table, column string, ids []string, q Query) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	if len(ids) <= c.batchSize {
		return Rows[T](ctx, c, table, q.with(In(column, ids)))
	}

	var chunks [][]string
	for start := 0; start < len(ids); start += c.batchSize {
		end := start + c.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}

	results := make([][]T, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxInFlight)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			rows, err := Rows[T](ctx, c, table, q.with(In(column, chunk)))
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Concatenate in chunk order. Callers sort anyway, but
	// determinism is cheap here.
	rows := []T{}
	for _, r := range results {
		rows = append(rows, r...)
	}
	return rows, nil
}

// CallFunction invokes a named remote function with the given params,
// decoding the structured result into out. Out may be nil to discard
// the response.
func (c *Client) CallFunction(ctx context.Context, name string, params any, out any) error {
	encoded, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding params for %q: %w", name, err)
	}

	u := c.baseURL + "/rest/v1/rpc/" + name
	body, err := c.do(ctx, http.MethodPost, u, encoded, name, string(encoded))
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindMalformed, Target: name, Params: string(encoded), Err: err}
	}
	return nil
}

// do performs one remote call with per attempt timeout and
// retry. Timeouts and 5xx responses are retried with exponential
// backoff; 4xx responses surface immediately.
func (c *Client) do(ctx context.Context, method, u string, reqBody []byte, target, params string) ([]byte, error) {
	var lastErr *Error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			metrics.RemoteRetries.WithLabelValues(target).Inc()
			c.logger.Warn().
				Str("target", target).
				Int("attempt", attempt).
				Err(lastErr).
				Msg("retrying remote call")

			select {
			case <-time.After(backoffDelay(attempt - 1)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := c.attempt(ctx, method, u, reqBody, target, params)
		if err == nil {
			return body, nil
		}

		// A cancelled parent context is the caller's doing, not
		// a remote failure.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var apiErr *Error
		if !errors.As(err, &apiErr) || !apiErr.retryable() {
			c.countFailure(err, target)
			return nil, err
		}
		lastErr = apiErr
	}

	c.countFailure(lastErr, target)
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, method, u string, reqBody []byte, target, params string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if reqBody != nil {
		bodyReader = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, &Error{Kind: KindClient, Target: target, Params: params, Err: err}
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindServer
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return nil, &Error{Kind: kind, Target: target, Params: params, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, &Error{Kind: KindServer, Target: target, Params: params, Status: resp.StatusCode}
	}
	if resp.StatusCode >= 400 {
		return nil, &Error{Kind: KindClient, Target: target, Params: params, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindServer, Target: target, Params: params, Err: err}
	}
	return body, nil
}

func (c *Client) countFailure(err error, target string) {
	if kind, ok := KindOf(err); ok {
		metrics.RemoteFailures.WithLabelValues(target, kind.String()).Inc()
	}
}

func backoffDelay(attempt int) time.Duration {
	delay := time.Duration(attempt) * baseBackoff
	if delay > maxBackoff {
		delay = maxBackoff
	}
	jitter := time.Duration(rand.Float64() * float64(delay) * jitterFactor)
	return delay + jitter
}
