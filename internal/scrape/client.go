// Package scrape forwards URLs outside the routing table to a generic
// main-content extraction endpoint.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sha1n/mcp-scout-server/internal/config"
	"github.com/sha1n/mcp-scout-server/internal/domain"
)

// Client calls the configured extraction endpoint.
type Client struct {
	httpClient *http.Client
	settings   *config.ScrapeSettings
}

// NewClient creates a scrape client.
func NewClient(httpClient *http.Client, settings *config.ScrapeSettings) *Client {
	return &Client{
		httpClient: httpClient,
		settings:   settings,
	}
}

// Extract asks the endpoint for the main-content text of the target URL
// and returns it verbatim.
func (c *Client) Extract(ctx context.Context, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.settings.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("url", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.settings.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: extraction endpoint returned HTTP %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading extraction response: %w", domain.ErrUpstreamFailure, err)
	}
	return string(body), nil
}
