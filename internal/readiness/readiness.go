// Package readiness waits for the editing service to come up and triggers
// its one-time initialization. This is the bootstrap's only contact with
// the service it prepares the workspace for.
package readiness

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"adtsetup/internal/logging"
)

// Client polls the service's health endpoint and issues the initialize
// call once the service answers.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logging.AppLogger

	// pollInterval is the delay between health probes; shortened in tests.
	pollInterval time.Duration
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, logger *logging.AppLogger) *Client {
	return &Client{
		baseURL:      baseURL,
		http:         &http.Client{Timeout: 5 * time.Second},
		logger:       logger,
		pollInterval: 2 * time.Second,
	}
}

// WaitHealthy polls GET /health until it answers 200, the timeout elapses,
// or ctx is cancelled. Probe failures are expected while the service is
// starting and only logged at debug level.
func (c *Client) WaitHealthy(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := c.baseURL + "/health"

	c.logger.Info("Waiting for editing service", "url", url, "timeout", timeout)
	for {
		if c.probe(ctx, url) {
			c.logger.Info("Editing service is healthy")
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("service at %s did not become healthy within %s", c.baseURL, timeout)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("readiness wait cancelled: %w", ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}

func (c *Client) probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("Health probe failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Initialize POSTs /setup/initialize exactly once. The caller decides how
// hard to fail; the service-side work this triggers is best-effort by
// design.
func (c *Client) Initialize(ctx context.Context) error {
	url := c.baseURL + "/setup/initialize"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build initialize request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("initialize request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("initialize returned status %d", resp.StatusCode)
	}

	c.logger.Info("Editing service initialized")
	return nil
}
