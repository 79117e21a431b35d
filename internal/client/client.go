package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/five82/triage/internal/triage"
)

// Client talks to the triage HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8000"
	defaultUserAgent = "triage/0.1"

	streamPath = "/api/triage_stream"
	healthPath = "/api/health"

	// RequestIDHeader carries the per-submission id to the server logs.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 64 << 10
)

// NewClient builds a Client using the provided apiBind host:port or URL.
// The client has no overall timeout; callers bound requests with their
// context.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Response is an open plain-text stream returned for a 2xx submission.
// Callers must Close it.
type Response struct {
	Status    int
	OK        bool
	RequestID string
	Body      io.ReadCloser
}

// Close releases the underlying connection.
func (r *Response) Close() error {
	if r == nil || r.Body == nil {
		return nil
	}
	return r.Body.Close()
}

// Submit posts req to the streaming endpoint. It makes exactly one attempt.
//
// Errors are typed: *triage.NetworkError when ctx was canceled,
// *triage.TransportError for other transport failures and
// *triage.ServerError for non-2xx statuses.
func (c *Client) Submit(ctx context.Context, req triage.Request) (*Response, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: streamPath})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/plain")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &triage.NetworkError{Err: err}
		}
		return nil, &triage.TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		return nil, &triage.ServerError{Status: resp.StatusCode, Detail: errorDetail(resp)}
	}

	return &Response{
		Status:    resp.StatusCode,
		OK:        true,
		RequestID: requestID,
		Body:      resp.Body,
	}, nil
}

// HealthReport is the outcome of a health call.
type HealthReport struct {
	OK      bool
	Status  int
	Payload map[string]any
}

// Health fetches the server health document. OK is only true for a 2xx
// response carrying a JSON object.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	if c == nil {
		return HealthReport{}, fmt.Errorf("client is nil")
	}
	var payload map[string]any
	status, err := c.getJSON(ctx, healthPath, &payload)
	if err != nil {
		return HealthReport{Status: status}, err
	}
	return HealthReport{OK: true, Status: status, Payload: payload}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) (int, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// errorDetail extracts {"detail": "..."} from an error body, falling back to
// a status-derived message.
func errorDetail(resp *http.Response) string {
	fallback := triage.DefaultDetail(resp.StatusCode)
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil && !errors.Is(err, io.EOF) {
		return fallback
	}
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	detail, ok := payload.Detail.(string)
	if !ok || strings.TrimSpace(detail) == "" {
		return fallback
	}
	return detail
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
