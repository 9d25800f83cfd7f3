// Package rest is the HTTP client of a json-server compatible relation store.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/scms/internal/models"
	"github.com/SAP-F-2025/scms/internal/repositories"
)

const (
	DefaultTimeout = 10 * time.Second

	// cap on the error body kept in an APIError
	maxErrorBody = 4 << 10
)

// Config is the address of a relation store. There is no package level default.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Token   string

	// HTTPClient overrides the client built from Timeout, mainly for tests
	HTTPClient *http.Client
}

// Client implements repositories.Repository over HTTP
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   string
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("relation store base URL is required")
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid relation store base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid relation store base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		token:   cfg.Token,
		logger:  logger,
	}, nil
}

func (c *Client) Student() repositories.StudentRepository {
	return &studentClient{client: c}
}

func (c *Client) Course() repositories.CourseRepository {
	return &courseClient{client: c}
}

func (c *Client) Enrollment() repositories.EnrollmentRepository {
	return &enrollmentClient{client: c}
}

// Ping checks that the store answers its health endpoint
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do sends one JSON request. Any non-2xx answer becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	display := path
	if encoded := query.Encode(); encoded != "" {
		display += "?" + encoded
	}
	endpoint := c.baseURL.String() + display

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, display, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, display, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// a cancelled caller is not a store failure
		if ctx.Err() != nil {
			c.logger.Debug("Store request cancelled", "method", method, "path", display, "error", err)
		} else {
			c.logger.Warn("Store request failed", "method", method, "path", display, "error", err)
		}
		return fmt.Errorf("%s %s failed: %w", method, display, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Store request completed",
		"method", method,
		"path", display,
		"status", resp.StatusCode,
		"latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &repositories.APIError{
			Method:     method,
			Path:       display,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode %s %s response: %w", method, display, err)
	}
	return nil
}

func collectionPath(collection string) string {
	return "/" + collection
}

// itemPath escapes the normalized id into the record path
func itemPath(collection string, id models.ID) string {
	return "/" + collection + "/" + url.PathEscape(models.NormalizeID(id).String())
}
