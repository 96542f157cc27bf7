// Package websearch queries the Google Custom Search API and classifies
// the per-result pagemap metadata into known source shapes.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sha1n/mcp-scout-server/internal/config"
	"github.com/sha1n/mcp-scout-server/internal/domain"
)

// searchBase is the Custom Search endpoint. Declared as a var so tests can
// substitute an httptest server.
var searchBase = "https://customsearch.googleapis.com/customsearch/v1"

// MaxStart is the largest accepted pagination offset. The API caps result
// sets at 100 items, so anything above 255 is certainly a caller bug.
const MaxStart = 255

// Query is the structured search request exposed to the agent.
type Query struct {
	Query        string
	ExactTerms   string
	ExcludeTerms string
	Start        int
}

// Result is one search hit with its classified metadata block.
type Result struct {
	Title   string
	Snippet string
	Link    string
	Shape   Classification
}

// Client calls the Custom Search API with fixed credentials.
type Client struct {
	httpClient *http.Client
	settings   *config.GoogleSettings
}

// NewClient creates a search client. The http.Client is shared with the
// other adapters and never mutated.
func NewClient(httpClient *http.Client, settings *config.GoogleSettings) *Client {
	return &Client{
		httpClient: httpClient,
		settings:   settings,
	}
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title   string          `json:"title"`
	Snippet string          `json:"snippet"`
	Link    string          `json:"link"`
	Pagemap json.RawMessage `json:"pagemap"`
}

// Search issues one search call and returns classified results.
// Input is validated before any network activity.
func (c *Client) Search(ctx context.Context, q Query) ([]Result, error) {
	if strings.TrimSpace(q.Query) == "" {
		return nil, fmt.Errorf("%w: query cannot be empty", domain.ErrInvalidInput)
	}
	if q.Start < 0 || q.Start > MaxStart {
		return nil, fmt.Errorf("%w: start must be in [0, %d], got %d", domain.ErrInvalidInput, MaxStart, q.Start)
	}

	params := url.Values{}
	if q.ExactTerms != "" {
		params.Set("exactTerms", q.ExactTerms)
	}
	if q.ExcludeTerms != "" {
		params.Set("excludeTerms", q.ExcludeTerms)
	}
	if q.Start > 0 {
		params.Set("start", strconv.Itoa(q.Start))
	}
	params.Set("q", q.Query)
	params.Set("cx", c.settings.EngineID)
	params.Set("key", c.settings.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search API returned HTTP %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding search response: %w", domain.ErrUpstreamFailure, err)
	}

	results := make([]Result, 0, len(body.Items))
	for _, item := range body.Items {
		results = append(results, Result{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
			Shape:   Classify(item.Pagemap),
		})
	}
	return results, nil
}
