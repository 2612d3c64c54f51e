package dune

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
	"github.com/VaitaR/DuneQueryRepo/internal/logger"
)

const (
	// DefaultBaseURL is the public Dune API.
	DefaultBaseURL = "https://api.dune.com"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// HeaderAPIKey carries the API key.
	HeaderAPIKey = "X-DUNE-API-KEY"

	// HeaderRequestID carries a per-request UUID.
	HeaderRequestID = "X-Request-Id"

	apiPath = "/api/v1"

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Ensure Client implements the interface.
var _ driven.QueryService = (*Client)(nil)

// HTTPDoer performs HTTP requests. *http.Client implements it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Dune query management API.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	timeout    time.Duration
	httpClient HTTPDoer
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithBaseURL points the client at another API host, e.g. a test server.
func WithBaseURL(raw string) ClientOption {
	return func(c *Client) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
		}
		c.baseURL = strings.TrimSuffix(u.String(), "/")
		return nil
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) error {
		if d > 0 {
			c.timeout = d
		}
		return nil
	}
}

// WithHTTPClient allows overriding the default Doer. This is useful for tests.
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) error {
		c.httpClient = doer
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// NewClient creates a Dune API client. apiKey must not be empty.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		userAgent: "dunesync",
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// BaseURL returns the API host the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// queryResponse is the GET /query/{id} payload.
type queryResponse struct {
	QueryID     int64    `json:"query_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Version     int      `json:"version"`
	QuerySQL    string   `json:"query_sql"`
	QueryEngine string   `json:"query_engine"`
	IsPrivate   bool     `json:"is_private"`
	IsArchived  bool     `json:"is_archived"`
	Owner       string   `json:"owner"`
}

type updateRequest struct {
	QuerySQL string `json:"query_sql"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetQuery fetches a query's metadata and SQL.
func (c *Client) GetQuery(ctx context.Context, id domain.QueryID) (*domain.Query, error) {
	defer logger.Timed(fmt.Sprintf("GET query %d", id))()

	var resp queryResponse
	if err := c.do(ctx, http.MethodGet, queryPath(id), nil, &resp); err != nil {
		return nil, err
	}

	q := &domain.Query{
		ID:          domain.QueryID(resp.QueryID),
		Name:        resp.Name,
		Description: resp.Description,
		Tags:        resp.Tags,
		Version:     resp.Version,
		SQL:         resp.QuerySQL,
		Engine:      resp.QueryEngine,
		IsPrivate:   resp.IsPrivate,
		IsArchived:  resp.IsArchived,
		Owner:       resp.Owner,
	}
	if q.ID == 0 {
		q.ID = id
	}
	return q, nil
}

// UpdateQuery replaces a query's SQL. Other fields are left untouched.
func (c *Client) UpdateQuery(ctx context.Context, id domain.QueryID, sql string) error {
	defer logger.Timed(fmt.Sprintf("PATCH query %d", id))()

	return c.do(ctx, http.MethodPatch, queryPath(id), updateRequest{QuerySQL: sql}, nil)
}

func queryPath(id domain.QueryID) string {
	return fmt.Sprintf("%s/query/%d", apiPath, id)
}

// do sends a JSON request and decodes a JSON response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	logger.Debug("%s %s (request id %s)", method, req.URL.Path, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := strings.TrimSpace(string(data))
	var parsed errorResponse
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Error != "" {
		msg = parsed.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		URL:        resp.Request.URL.String(),
	}
}
