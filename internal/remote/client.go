package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bjulian5/ghprs/internal/model"
	"github.com/bjulian5/ghprs/internal/server"
	"github.com/bjulian5/ghprs/internal/session"
)

// APIError is a non-2xx response from the server
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s (request %s)", e.Status, e.Message, e.RequestID)
}

// Unwrap maps statuses back onto the session errors the server derived them from
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return session.ErrNotFound
	case http.StatusBadGateway:
		return session.ErrRefreshFailed
	default:
		return nil
	}
}

// Client talks to one named session on a ghprs server
type Client struct {
	baseURL    string
	session    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the session called sessionName on the server at baseURL
func NewClient(baseURL, sessionName, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    sessionName,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Unacknowledged implements session.Tracker.
func (c *Client) Unacknowledged(ctx context.Context) ([]model.PR, error) {
	return c.listPRs(ctx, "unacknowledged-prs")
}

// Acknowledged implements session.Tracker.
func (c *Client) Acknowledged(ctx context.Context) ([]model.PR, error) {
	return c.listPRs(ctx, "acknowledgement")
}

// Acknowledge implements session.Tracker.
func (c *Client) Acknowledge(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "acknowledgement/"+url.PathEscape(id), nil)
}

// Unacknowledge implements session.Tracker.
func (c *Client) Unacknowledge(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "acknowledgement/"+url.PathEscape(id), nil)
}

// Clear removes the session on the server. A session the server never saw is already clear.
func (c *Client) Clear(ctx context.Context) error {
	err := c.do(ctx, http.MethodDelete, "clear-session", nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil
	}
	return err
}

// ForceNextRefresh implements session.Tracker.
func (c *Client) ForceNextRefresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "refresh", nil)
}

func (c *Client) listPRs(ctx context.Context, path string) ([]model.PR, error) {
	var prs []model.PR
	if err := c.do(ctx, http.MethodGet, path, &prs); err != nil {
		return nil, err
	}
	return prs, nil
}

// do sends a request for the session-relative path and decodes a JSON body into out when set
func (c *Client) do(ctx context.Context, method, path string, out any) error {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.session), path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.New().String()[:8]
	req.Header.Set(server.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, requestID)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeError(resp *http.Response, requestID string) error {
	apiErr := &APIError{Status: resp.StatusCode, RequestID: requestID}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var errResp server.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Message = errResp.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

var _ session.Tracker = (*Client)(nil)
