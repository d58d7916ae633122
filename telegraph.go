// Package telegraph is a client for the Telegraph publishing API.
//
// Basic usage:
//
//	client := telegraph.New()
//	account, err := client.CreateAccount(ctx, telegraph.CreateAccountRequest{
//	    ShortName: "sandbox",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	parsed, err := content.Parse("# Hello\n\nfirst post", content.ModeMarkdown)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page, err := client.CreatePage(ctx, telegraph.CreatePageRequest{
//	    Title:   "Hello",
//	    Content: parsed,
//	})
//
// Page and view reads can be served from an optional disk cache:
//
//	cache, _ := telegraph.NewCache(15 * time.Minute)
//	client := telegraph.New(telegraph.WithCache(cache))
package telegraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const (
	defaultBaseURL   = "https://api.telegra.ph"
	defaultUploadURL = "https://telegra.ph/upload"

	// maxResponseBytes bounds API responses; page content tops out well
	// below this.
	maxResponseBytes = 8 << 20

	userAgent = "telegraph-go/1.0"
)

// ErrNoAccessToken is returned by account-scoped methods when the client
// has no token to attach.
var ErrNoAccessToken = errors.New("telegraph: no access token set")

// APIError is a failure reported by the remote API envelope.
type APIError struct {
	Method  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegraph: %s: %s", e.Method, e.Message)
}

// HTTPError is a non-200 response from the API host.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}

// Client talks to the Telegraph API. The zero set of options is usable;
// a Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	uploadURL  string
	logger     *slog.Logger
	cache      *Cache

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithUploadURL points the upload helper at a different endpoint.
func WithUploadURL(uploadURL string) Option {
	return func(c *Client) { c.uploadURL = uploadURL }
}

// WithAccessToken sets the account token for account-scoped calls.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets a custom logger. The client is silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCache enables the read-side cache for GetPage and GetViews.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		uploadURL:  defaultUploadURL,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AccessToken returns the token currently attached to the client.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetAccessToken replaces the token attached to the client.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) requireToken() (string, error) {
	token := c.AccessToken()
	if token == "" {
		return "", ErrNoAccessToken
	}
	return token, nil
}

// envelope is the wire frame every API response arrives in.
type envelope struct {
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// request POSTs params as JSON to the named API method and decodes the
// result into out.
func (c *Client) request(ctx context.Context, method string, params, out any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("telegraph: encode %s params: %w", method, err)
	}

	endpoint := c.baseURL + "/" + method
	c.logger.DebugContext(ctx, "telegraph request", "method", method)

	data, err := c.post(ctx, endpoint, body)
	if err != nil {
		return err
	}
	return decodeEnvelope(method, data, out)
}

func decodeEnvelope(method string, data []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("telegraph: decode %s response: %w", method, err)
	}
	if !env.OK {
		return &APIError{Method: method, Message: env.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("telegraph: decode %s result: %w", method, err)
	}
	return nil
}

// post sends one request with a bounded retry on transient failures.
func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("User-Agent", userAgent)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, err
			}
			defer func() { _ = resp.Body.Close() }() //nolint:errcheck // close error irrelevant

			if resp.StatusCode != http.StatusOK {
				return nil, &HTTPError{StatusCode: resp.StatusCode, URL: url}
			}
			return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying telegraph request", "attempt", n+1, "url", url, "error", err)
		}),
	)
}

// isRetryableError reports whether a failure is transient. 4xx responses
// other than 429 are permanent.
func isRetryableError(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	return true
}
