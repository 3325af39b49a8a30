// Package backend is the HTTP client for the remote commerce API. It owns
// request correlation (the X-Cart-Token header), payload normalization and
// the error taxonomy. It never retries: a failure is surfaced to the caller
// as-is and retry policy, if any, lives there.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/token"
)

const cartTokenHeader = "X-Cart-Token"

// Credentials supplies the bearer token of the current session, or "" when
// the visitor is anonymous.
type Credentials interface {
	AccessToken() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  token.Store
	creds   Credentials
	breaker *gobreaker.CircuitBreaker[*http.Response]
	log     *zap.Logger
}

type Option func(*Client)

// WithCredentials attaches a session source; its access token is sent as a
// bearer header on every request while non-empty.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.creds = creds }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, tokens token.Store, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens: tokens,
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}

	// The breaker isolates a dead backend; it counts transport failures only.
	// Open-state calls fail without touching the network. There is still no
	// retry anywhere.
	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "commerce-backend",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return c
}

// do issues one request and decodes a 2xx body into out (when out != nil).
// Non-2xx responses come back as *APIError; transport failures are wrapped.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.request(ctx, method, path, body, out, false)
}

// doCart is the variant for the cart endpoints. They are the only ones whose
// responses carry a fresh cart token; order payloads have a top-level "token"
// of their own, so capturing everywhere would clobber the cart correlation.
func (c *Client) doCart(ctx context.Context, method, path string, body, out any) error {
	return c.request(ctx, method, path, body, out, true)
}

func (c *Client) request(ctx context.Context, method, path string, body, out any, captureToken bool) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if captureToken {
		c.captureCartToken(ctx, resp.Header, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	cartToken, err := c.tokens.Get(ctx)
	if err != nil {
		c.log.Warn("cart token read failed", zap.Error(err))
	} else if cartToken != "" {
		req.Header.Set(cartTokenHeader, cartToken)
	}

	if c.creds != nil {
		if access := c.creds.AccessToken(); access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// captureCartToken persists a fresh token carried on the response. The header
// wins over the body field; an absent token leaves the stored value alone.
func (c *Client) captureCartToken(ctx context.Context, header http.Header, body []byte) {
	fresh := header.Get(cartTokenHeader)
	if fresh == "" && len(body) > 0 {
		var envelope struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil {
			fresh = envelope.Token
		}
	}
	if fresh == "" {
		return
	}
	if err := c.tokens.Set(ctx, fresh); err != nil {
		c.log.Warn("cart token persist failed", zap.Error(err))
	}
}
