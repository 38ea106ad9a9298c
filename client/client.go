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
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"courtside/storage"
	"courtside/utils"
)

// Client wraps every round trip to the booking backend: it attaches the
// persisted bearer credential and device identity, applies a politeness
// rate limit, and reacts to authentication failures by clearing the
// persisted session. Single-attempt semantics: no retries, no timeout
// override beyond the transport default.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      storage.Store
	limiter    *rate.Limiter
	logger     *zap.Logger
	deviceName string
}

type Option func(*Client)

// WithHTTPClient overrides the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithRateLimit caps outbound requests per minute. Zero disables the limiter.
func WithRateLimit(requestsPerMin int) Option {
	return func(c *Client) {
		if requestsPerMin <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMin)), requestsPerMin)
	}
}

// WithDeviceName overrides the X-Device-Name header value.
func WithDeviceName(name string) Option {
	return func(c *Client) {
		c.deviceName = name
	}
}

func New(baseURL string, store storage.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/100), 100),
		logger:     utils.GetLogger(),
		deviceName: "courtside",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request performs a single round trip and returns the raw response body.
// A 401-equivalent response clears the persisted token and session record
// before the failure propagates.
func (c *Client) Request(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Device-ID", c.ensureDeviceID())
	req.Header.Set("X-Device-Name", c.deviceName)

	token, err := c.store.Get(storage.KeyToken)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearPersistedSession()
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrAuthExpired)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := backendMessage(respBody)
		if message == "" {
			message = "request failed"
		}
		return nil, &APIError{Status: resp.StatusCode, Message: message}
	}

	return respBody, nil
}

// clearPersistedSession drops both session keys. The pair is invalid once
// the backend rejects the credential; a partial clear is tolerated because
// restore treats partial presence as invalid anyway.
func (c *Client) clearPersistedSession() {
	if err := c.store.Delete(storage.KeyToken); err != nil {
		c.logger.Warn("Failed to clear persisted token", zap.Error(err))
	}
	if err := c.store.Delete(storage.KeyUser); err != nil {
		c.logger.Warn("Failed to clear persisted session", zap.Error(err))
	}
}

// ensureDeviceID returns the persisted device ID, generating one on first use.
func (c *Client) ensureDeviceID() string {
	id, err := c.store.Get(storage.KeyDeviceID)
	if err == nil && id != "" {
		return id
	}
	id = uuid.NewString()
	if err := c.store.Set(storage.KeyDeviceID, id); err != nil {
		c.logger.Warn("Failed to persist device ID", zap.Error(err))
	}
	return id
}
