// Package storeclient is the HTTP adapter the operator tools use to talk to
// the record store.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
)

// DefaultTimeout bounds every store round trip when Options.Timeout is unset.
const DefaultTimeout = 10 * time.Second

const maxBody = 1 << 20

// StoreError is a non-2xx store response. Message is the store's own error
// text when it sent one.
type StoreError struct {
	Status  int
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store responded %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is a StoreError with the given status.
func IsStatus(err error, status int) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Status == status
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	SessionToken string
	CookieName   string
	Transport    http.RoundTripper
	Logger       *zap.Logger
}

// Client calls the record store's JSON API.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	logger  *zap.Logger
}

// New creates a Client. A non-empty session token is installed in the
// cookie jar so every request to the store carries it.
func New(opts Options) (*Client, error) {
	base, err := url.ParseRequestURI(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if opts.SessionToken != "" {
		name := opts.CookieName
		if name == "" {
			name = "petstore_session"
		}
		jar.SetCookies(base, []*http.Cookie{{Name: name, Value: opts.SessionToken, Path: "/"}})
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:    &http.Client{Timeout: timeout, Transport: transport, Jar: jar},
		baseURL: base,
		logger:  logger,
	}, nil
}

// List fetches every record in store order.
func (c *Client) List(ctx context.Context) ([]api.Record, error) {
	var records []api.Record
	if err := c.do(ctx, http.MethodGet, "/api/pets", nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []api.Record{}
	}
	return records, nil
}

// Create submits a new record.
func (c *Client) Create(ctx context.Context, in api.RecordInput) (*api.MutationResponse, error) {
	var resp api.MutationResponse
	if err := c.do(ctx, http.MethodPost, "/api/pets", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update replaces the record with the given id.
func (c *Client) Update(ctx context.Context, id string, in api.RecordInput) (*api.MutationResponse, error) {
	var resp api.MutationResponse
	if err := c.do(ctx, http.MethodPut, "/api/pets/"+url.PathEscape(id), in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes the record with the given id.
func (c *Client) Delete(ctx context.Context, id string) (*api.MutationResponse, error) {
	var resp api.MutationResponse
	if err := c.do(ctx, http.MethodDelete, "/api/pets/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DefaultImages fetches the store's per-type default image table.
func (c *Client) DefaultImages(ctx context.Context) (map[string]string, error) {
	var resp api.DefaultImagesResponse
	if err := c.do(ctx, http.MethodGet, "/api/pets/default-images", nil, &resp); err != nil {
		return nil, err
	}
	return resp.DefaultImages, nil
}

// Stats fetches the admin inventory summary.
func (c *Client) Stats(ctx context.Context) (*api.StatsResponse, error) {
	var resp api.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats/pets", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("storeclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("storeclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storeclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("storeclient: read body: %w", err)
	}

	c.logger.Debug("store call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StoreError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("storeclient: unmarshal json: %w", err)
	}
	return nil
}

// errorMessage pulls "error" (or "message") out of a failure body without
// assuming the rest of its shape.
func errorMessage(status int, raw []byte) string {
	for _, key := range []string{"error", "message"} {
		if msg, err := jsonparser.GetString(raw, key); err == nil && msg != "" {
			return msg
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 200 && !strings.HasPrefix(text, "<") {
		return text
	}
	return http.StatusText(status)
}
