package eibi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL    = "http://www.eibispace.de/dx"
	DefaultAttempts   = 3
	DefaultTimeout    = 3 * time.Second
	DefaultRetryDelay = 3 * time.Second
)

var (
	// ErrNotFound means the server has no file for the season. Not retried.
	ErrNotFound = errors.New("schedule not found on server")
	// ErrTransient means every attempt failed with a network or non-404 HTTP error.
	ErrTransient = errors.New("schedule download failed")
	// ErrMissingLocalFile means no local copy exists to convert.
	ErrMissingLocalFile = errors.New("schedule file missing")
)

// ClientOptions configures a Client. Zero values select the defaults; a
// negative RetryDelay retries without pausing.
type ClientOptions struct {
	BaseURL    string
	Attempts   int
	Timeout    time.Duration
	RetryDelay time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client downloads schedule files from the EiBi site.
type Client struct {
	httpClient *http.Client
	baseURL    string
	attempts   int
	delay      time.Duration
	logger     *zap.Logger
}

// NewClient creates a new schedule client
func NewClient(opts ClientOptions) *Client {
	c := &Client{
		httpClient: opts.HTTPClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		attempts:   opts.Attempts,
		delay:      opts.RetryDelay,
		logger:     opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.attempts <= 0 {
		c.attempts = DefaultAttempts
	}
	if c.delay == 0 {
		c.delay = DefaultRetryDelay
	} else if c.delay < 0 {
		c.delay = 0
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// URL returns the download location of a schedule file.
func (c *Client) URL(filename string) string {
	return c.baseURL + "/" + filename
}

// Fetch downloads a schedule file and returns its raw bytes. A 404 aborts
// at once with ErrNotFound; other failures are retried after a fixed delay
// and end in ErrTransient.
func (c *Client) Fetch(ctx context.Context, filename string) ([]byte, error) {
	url := c.URL(filename)
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		c.logger.Info("fetching schedule", zap.String("url", url), zap.Int("attempt", attempt))
		body, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		lastErr = err
		c.logger.Warn("fetch attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		if attempt == c.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.delay):
		}
	}
	return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrTransient, filename, c.attempts, lastErr)
}

// Download fetches filename, decodes it to UTF-8, rewrites CRLF to CR and
// stores the result at dest.
func (c *Client) Download(ctx context.Context, filename, dest string, enc Encoding) error {
	raw, err := c.Fetch(ctx, filename)
	if err != nil {
		return err
	}
	text, err := Decode(raw, enc)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", filename, err)
	}
	if err := os.WriteFile(dest, ToCarriageReturns(text), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", dest, err)
	}
	c.logger.Info("schedule saved", zap.String("path", dest), zap.Int("bytes", len(text)))
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// EnsureLocal checks that path is a regular file.
func EnsureLocal(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingLocalFile, path)
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrMissingLocalFile, path)
	}
	return nil
}
