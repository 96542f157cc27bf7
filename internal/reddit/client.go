// Package reddit fetches submissions and their comment trees through the
// OAuth API and flattens them into an ordered transcript.
package reddit

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

// API endpoints. Declared as vars so tests can substitute httptest servers.
var (
	tokenBase = "https://www.reddit.com"
	oauthBase = "https://oauth.reddit.com"
)

// Client holds script-app credentials. It does not hold a session; each
// fetch authenticates fresh so concurrent fetches never share session
// state (the API is single-session-per-credential).
type Client struct {
	httpClient *http.Client
	settings   *config.RedditSettings
}

// NewClient creates a Reddit client.
func NewClient(httpClient *http.Client, settings *config.RedditSettings) *Client {
	return &Client{
		httpClient: httpClient,
		settings:   settings,
	}
}

// Session is one authenticated API session, valid for a single fetch.
type Session struct {
	client *Client
	token  string
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Authenticate performs the password grant and returns a fresh session.
func (c *Client) Authenticate(ctx context.Context) (*Session, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.settings.Username)
	form.Set("password", c.settings.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenBase+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}
	req.SetBasicAuth(c.settings.ClientID, c.settings.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.settings.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token endpoint returned HTTP %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding token response: %w", domain.ErrUpstreamFailure, err)
	}
	if body.AccessToken == "" {
		return nil, fmt.Errorf("%w: token endpoint returned no access token", domain.ErrUpstreamFailure)
	}

	return &Session{client: c, token: body.AccessToken}, nil
}

// Submission fetches a submission and its comment tree, bounded by the
// configured depth and comment limits. The tree is owned by the caller
// and discarded after flattening.
func (s *Session) Submission(ctx context.Context, id string) (*Submission, *Tree, error) {
	params := url.Values{}
	params.Set("raw_json", "1")
	params.Set("depth", strconv.Itoa(s.client.settings.MaxDepth))
	params.Set("limit", strconv.Itoa(s.client.settings.MaxComments))

	reqURL := oauthBase + "/comments/" + url.PathEscape(id) + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("User-Agent", s.client.settings.UserAgent)

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("%w: comments endpoint returned HTTP %d for %s", domain.ErrUpstreamFailure, resp.StatusCode, id)
	}

	// The endpoint returns a two-element array: the submission listing
	// followed by the comment listing.
	var listings []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, nil, fmt.Errorf("%w: decoding comments response: %w", domain.ErrUpstreamFailure, err)
	}
	if len(listings) < 2 {
		return nil, nil, fmt.Errorf("%w: comments response has %d listings, want 2", domain.ErrUpstreamFailure, len(listings))
	}

	sub, err := parseSubmission(listings[0])
	if err != nil {
		return nil, nil, err
	}
	if sub == nil {
		return nil, nil, fmt.Errorf("%w: submission %s", domain.ErrUpstreamEmpty, id)
	}

	tree, err := ParseTree(listings[1])
	if err != nil {
		return nil, nil, err
	}
	return sub, tree, nil
}
