package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the gateway. Callers match with errors.Is; the
// wrapped message carries the offending value (id, path, host or cause).
var (
	// ErrInvalidInput indicates a malformed request that was rejected
	// before any network call (missing URL host, empty query, ...).
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingIdentifier indicates a URL that matched a known host but
	// carries no resource identifier in its path. It is a specialization
	// of ErrInvalidInput.
	ErrMissingIdentifier = fmt.Errorf("%w: missing identifier", ErrInvalidInput)

	// ErrUpstreamEmpty indicates a well-formed id for which the upstream
	// API returned zero items. Terminal, never retried.
	ErrUpstreamEmpty = errors.New("upstream returned no items")

	// ErrUpstreamFailure indicates a network, HTTP status or decoding
	// failure talking to an external API. The underlying cause is wrapped.
	ErrUpstreamFailure = errors.New("upstream request failed")

	// ErrNotFound indicates a missing local document. The message carries
	// the attempted path.
	ErrNotFound = errors.New("document not found")

	// ErrUnsupportedHost indicates a URL host outside the routing table
	// with no fallback scraper configured.
	ErrUnsupportedHost = errors.New("unsupported host")
)
