package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// Client calls the API gateway with the session credentials attached.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient sets the client requests are sent with. It is wrapped by
// Authenticate when the Client is built.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New builds a Client whose transport is already authenticated with src.
func New(baseURL string, src CredentialSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Copy so options never change a client the caller still holds
	hc := *Authenticate(c.httpClient, src)
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc
	return c
}

// HTTPClient returns the authenticated client for callers that build their
// own requests.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// APIError is returned for any non 2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api request failed: status %d body %s", e.StatusCode, e.Body)
}

// Do sends body (JSON encoded, when not nil) to path and decodes the response
// into out (when not nil).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.New().String()
	req.Header.Set(requestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Credentials are posted to the gateway login endpoint
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Tenant   string `json:"tenant,omitempty"`
}

type signInResponse struct {
	Token string `json:"token"`
}

// SignIn exchanges credentials for a token. It does not touch the session,
// pass the token to session.Manager.Login.
func (c *Client) SignIn(ctx context.Context, creds Credentials) (string, error) {
	var resp signInResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("sign in: response has no token")
	}
	return resp.Token, nil
}
