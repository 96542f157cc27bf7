// Package stackoverflow fetches question and answer resources from the
// Stack Exchange API and assembles them into a readable transcript.
package stackoverflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sha1n/mcp-scout-server/internal/config"
	"github.com/sha1n/mcp-scout-server/internal/domain"
)

// apiBase is the Stack Exchange API endpoint. Declared as a var so tests
// can substitute an httptest server.
var apiBase = "https://api.stackexchange.com/2.3"

// Question is the question resource as returned by the questions endpoint.
type Question struct {
	QuestionID  int64    `json:"question_id"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Score       int      `json:"score"`
	Tags        []string `json:"tags"`
	AnswerCount int      `json:"answer_count"`
	Owner       Owner    `json:"owner"`
}

// Owner identifies the author of a question.
type Owner struct {
	DisplayName string `json:"display_name"`
	Reputation  int    `json:"reputation"`
}

// Answer is one answer resource as returned by the answers endpoint.
type Answer struct {
	QuestionID int64  `json:"question_id"`
	Body       string `json:"body"`
	Score      int    `json:"score"`
	IsAccepted bool   `json:"is_accepted"`
}

// Client calls the Stack Exchange API. Site and filter parameters are sent
// identically on every call so the question and answers responses agree on
// body rendering.
type Client struct {
	httpClient *http.Client
	settings   *config.StackExchangeSettings
}

// NewClient creates a Stack Exchange API client.
func NewClient(httpClient *http.Client, settings *config.StackExchangeSettings) *Client {
	return &Client{
		httpClient: httpClient,
		settings:   settings,
	}
}

// wrapper is the common envelope of every Stack Exchange response.
type wrapper[T any] struct {
	Items []T `json:"items"`
}

// Question fetches a question by id. A valid id with zero items is
// reported by the assembler, not here; this returns the raw item list.
func (c *Client) Question(ctx context.Context, id string) ([]Question, error) {
	return fetchItems[Question](ctx, c, "/questions/"+url.PathEscape(id))
}

// Answers fetches the answers of a question, in API order.
func (c *Client) Answers(ctx context.Context, id string) ([]Answer, error) {
	return fetchItems[Answer](ctx, c, "/questions/"+url.PathEscape(id)+"/answers")
}

func fetchItems[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	params := url.Values{}
	params.Set("site", c.settings.Site)
	params.Set("filter", c.settings.Filter)
	if c.settings.Key != "" {
		params.Set("key", c.settings.Key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: stack exchange API returned HTTP %d for %s", domain.ErrUpstreamFailure, resp.StatusCode, path)
	}

	var body wrapper[T]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response for %s: %w", domain.ErrUpstreamFailure, path, err)
	}
	return body.Items, nil
}
