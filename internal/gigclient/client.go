// Package gigclient talks to the CraftHub gig API over JSON/HTTP.
package gigclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/sudo-init-do/crafthub/internal/gig"
)

const (
	// GigsPath is the gig collection resource.
	GigsPath  = "/api/v1/gig/"
	LoginPath = "/auth/login"

	// FallbackCreateMessage is shown when a rejected create carries no message.
	FallbackCreateMessage = "Failed to create gig"
	FallbackLoginMessage  = "Failed to log in"

	DefaultBaseURL = "http://localhost:3000"
	DefaultTimeout = 15 * time.Second
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Message returns the text to show for a failed call: the API's message for
// rejections and the error text for anything else.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// CreateResult is the decoded success body of a create call.
type CreateResult struct {
	Success bool   `json:"success"`
	GigID   string `json:"gig_id"`
	Message string `json:"message"`
}

type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	baseURL    string
	logger     *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient makes the client send through a copy of hc. hc itself is
// not modified; a cookie jar is attached to the copy if hc has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.httpClient = &cp
	}
}

// WithTimeout overrides the request timeout regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API at baseURL. Cookies set by the API are
// kept in a jar and sent back on later calls.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}
	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// CreateGig posts p to the gig collection using token as bearer credential.
func (c *Client) CreateGig(ctx context.Context, token string, p gig.Payload) (*CreateResult, error) {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	var res CreateResult
	if err := c.postJSON(ctx, GigsPath, "Bearer "+token, p, &res, FallbackCreateMessage); err != nil {
		return nil, err
	}
	c.logger.Debug("gig created", zap.String("gig_id", res.GigID))
	return &res, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var res loginResponse
	if err := c.postJSON(ctx, LoginPath, "", loginRequest{Email: email, Password: password}, &res, FallbackLoginMessage); err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", errors.New("login response did not include a token")
	}
	return res.Token, nil
}

type errorBody struct {
	Message json.RawMessage `json:"message"`
}

// messageText renders a scalar message the way the browser would print it.
// Empty strings, zero, false, null and non-scalars yield "".
func messageText(raw json.RawMessage) string {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return ""
	}
	switch m := v.(type) {
	case string:
		return m
	case float64:
		if m == 0 {
			return ""
		}
		return strconv.FormatFloat(m, 'f', -1, 64)
	case bool:
		if m {
			return "true"
		}
	}
	return ""
}

// postJSON sends in as JSON. authorization, when set, is sent verbatim as
// the Authorization header.
func (c *Client) postJSON(ctx context.Context, path, authorization string, in, out any, fallback string) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fallback
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			if m := messageText(eb.Message); m != "" {
				msg = m
			}
		}
		c.logger.Debug("request rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
