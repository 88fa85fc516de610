// Package gong is a thin client for the Gong v2 API. A Client is constructed
// per request from the caller's credentials and holds no state beyond them.
package gong

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/crmchattie/gong-mcp/pkg/auth"
)

const (
	defaultBaseURL = "https://api.gong.io/v2"
	defaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of an upstream error body is read.
	maxErrorBody = 64 * 1024
)

// Client issues authenticated requests against the Gong API.
type Client struct {
	baseURL    string
	creds      auth.Credentials
	signer     *Signer
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout adjusts the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient constructs a Client for the given credentials.
func NewClient(creds auth.Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		creds:      creds,
		signer:     NewSigner(creds.AccessKey, creds.AccessSecret),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListCalls fetches calls, optionally bounded by ISO-8601 datetimes. Empty
// bounds are omitted from the query.
func (c *Client) ListCalls(ctx context.Context, fromDateTime, toDateTime string) (*CallsResponse, error) {
	query := url.Values{}
	if fromDateTime != "" {
		query.Set("fromDateTime", fromDateTime)
	}
	if toDateTime != "" {
		query.Set("toDateTime", toDateTime)
	}

	var out CallsResponse
	if err := c.do(ctx, http.MethodGet, "/calls", query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// RetrieveTranscripts fetches transcripts for the given call IDs. Call IDs the
// upstream has no transcript for simply yield no entry.
func (c *Client) RetrieveTranscripts(ctx context.Context, callIDs []string) (*TranscriptsResponse, error) {
	if len(callIDs) == 0 {
		return nil, ErrEmptyCallIDs
	}

	var body transcriptFilter
	body.Filter.CallIDs = callIDs
	body.Filter.IncludeEntities = true
	body.Filter.IncludeInteractionsSummary = true
	body.Filter.IncludeTrackers = true

	var out TranscriptsResponse
	if err := c.do(ctx, http.MethodPost, "/calls/transcript", nil, &body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// do performs one signed request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	// The signature covers the body when present, otherwise the query params.
	signPayload := string(payload)
	if signPayload == "" && len(query) > 0 {
		params := make(map[string]string, len(query))
		for key := range query {
			params[key] = query.Get(key)
		}
		encoded, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("marshal query params: %w", err)
		}
		signPayload = string(encoded)
	}

	timestamp := c.signer.Timestamp()
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.creds.AccessKey, c.creds.AccessSecret)
	req.Header.Set(headerAccessKey, c.creds.AccessKey)
	req.Header.Set(headerTimestamp, timestamp)
	req.Header.Set(headerSignature, c.signer.Sign(method, path, timestamp, signPayload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// apiError turns a non-2xx response into an APIError carrying whatever message
// the upstream included.
func (c *Client) apiError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		log.Error("failed to read upstream error body", "status", resp.StatusCode, "err", err)
		return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	// Gong error bodies look like {"requestId": "...", "errors": ["..."]}.
	var parsed struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && len(parsed.Errors) > 0 {
		return &APIError{StatusCode: resp.StatusCode, Message: parsed.Errors[0]}
	}

	message := string(bytes.TrimSpace(raw))
	if message == "" {
		message = resp.Status
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
