// Package api implements the HTTP client for the database assistant
// backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/dmartins/dbchat/internal/errors"
	"github.com/dmartins/dbchat/internal/models"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Client talks to the backend over HTTP JSON.
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	dbType     string
	verbose    bool
}

// Option is a function that configures the client
type Option func(*Client)

// WithDBType sets the db_type hint sent with SQL questions.
func WithDBType(dbType string) Option {
	return func(c *Client) {
		c.dbType = dbType
	}
}

// WithVerbose enables diagnostic logging to stderr.
func WithVerbose(enabled bool) Option {
	return func(c *Client) {
		c.verbose = enabled
	}
}

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func WithHTTPClient(hc tls_client.HttpClient) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL cannot be empty")
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(120),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}
		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// postJSON issues a context-bound POST and returns the response body.
// The context's cancellation state is surfaced as ctx.Err() so callers
// can distinguish user cancellation from transport failures at the
// resume point.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, ctx)
}

// getJSON issues a context-bound GET and returns the response body.
func (c *Client) getJSON(ctx context.Context, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, ctx)
}

func (c *Client) do(req *http.Request, ctx context.Context) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Cancellation wins over whatever the transport reported.
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, body, nil
}

// FetchSchema retrieves the table-to-columns mapping. Callers treat any
// failure as an absent schema, never as a user-facing error.
func (c *Client) FetchSchema(ctx context.Context) (models.Schema, error) {
	status, body, err := c.getJSON(ctx, models.EndpointSchema)
	if err != nil {
		return nil, wrapTransport("fetch schema", models.EndpointSchema, err)
	}

	var resp struct {
		Success bool          `json:"success"`
		Schema  models.Schema `json:"schema"`
		Error   string        `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apierrors.NewParseError(fmt.Sprintf("schema response: %v", err))
	}
	if !resp.Success {
		return nil, apierrors.NewAPIError(status, models.EndpointSchema, resp.Error)
	}
	return resp.Schema, nil
}
