// Package gateway routes fetch requests to the adapter owning the URL's
// host and exposes the MCP tools.
package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sha1n/mcp-scout-server/internal/docs"
	"github.com/sha1n/mcp-scout-server/internal/domain"
	"github.com/sha1n/mcp-scout-server/internal/reddit"
	"github.com/sha1n/mcp-scout-server/internal/scrape"
	"github.com/sha1n/mcp-scout-server/internal/stackoverflow"
)

// Router dispatches a URL to the adapter for its host. Host comparison is
// exact string equality, never substring or suffix matching, so an
// embedded or spoofed host can't select the wrong adapter.
type Router struct {
	qa         *stackoverflow.Client
	reddit     *reddit.Client // nil when credentials are absent
	docs       *docs.Store    // nil when no mirror is configured
	scraper    *scrape.Client // nil when no endpoint is configured
	qaHost     string
	docsHost   string
	redditHost string
}

// RouterConfig wires the adapters and host routing table.
type RouterConfig struct {
	QA         *stackoverflow.Client
	Reddit     *reddit.Client
	Docs       *docs.Store
	Scraper    *scrape.Client
	QAHost     string
	DocsHost   string
	RedditHost string
}

// NewRouter creates a router.
func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		qa:         cfg.QA,
		reddit:     cfg.Reddit,
		docs:       cfg.Docs,
		scraper:    cfg.Scraper,
		qaHost:     cfg.QAHost,
		docsHost:   cfg.DocsHost,
		redditHost: cfg.RedditHost,
	}
}

// Fetch returns the normalized text blocks for a URL. Unconfigured
// adapters drop their host out of the routing table, so such URLs take
// the fallback path like any other host.
func (r *Router) Fetch(ctx context.Context, rawURL string) ([]string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a valid URL", domain.ErrInvalidInput, rawURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: URL %q has no host", domain.ErrInvalidInput, rawURL)
	}

	switch {
	case u.Host == r.qaHost:
		id := pathSegment(u.Path, 1)
		if !isNumeric(id) {
			return nil, fmt.Errorf("%w: no question id in %q", domain.ErrMissingIdentifier, u.Path)
		}
		return r.qa.AssembleQA(ctx, id)

	case r.docs != nil && u.Host == r.docsHost:
		content, err := r.docs.Read(u.Path)
		if err != nil {
			return nil, err
		}
		return []string{content}, nil

	case r.reddit != nil && u.Host == r.redditHost:
		id := pathSegment(u.Path, 3)
		if id == "" {
			return nil, fmt.Errorf("%w: no submission id in %q", domain.ErrMissingIdentifier, u.Path)
		}
		// A fresh session per fetch; the upstream is
		// single-session-per-credential and sessions must not be
		// shared across concurrent flattens.
		session, err := r.reddit.Authenticate(ctx)
		if err != nil {
			return nil, err
		}
		sub, tree, err := session.Submission(ctx, id)
		if err != nil {
			return nil, err
		}
		return reddit.Flatten(sub, tree), nil

	default:
		if r.scraper != nil {
			content, err := r.scraper.Extract(ctx, rawURL)
			if err != nil {
				return nil, err
			}
			return []string{content}, nil
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedHost, u.Host)
	}
}

// pathSegment returns the i-th segment of a URL path (0-based), or "" if
// the path is shorter.
func pathSegment(p string, i int) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	if i >= len(segments) {
		return ""
	}
	return segments[i]
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
