package app

import "github.com/spf13/pflag"

// RegisterFlags registers all CLI flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("auth-type", "a", "", "Authentication type: none, basic, or apikey")
	flags.StringP("auth-basic-username", "u", "", "Basic auth username")
	flags.StringP("auth-basic-password", "P", "", "Basic auth password")
	flags.StringSliceP("auth-api-keys", "k", nil, "API keys (comma-separated)")

	flags.String("google-engine-id", "", "Google Custom Search engine id")
	flags.String("google-api-key", "", "Google Custom Search API key")

	flags.String("stackexchange-site", "", "Stack Exchange site parameter")
	flags.String("stackexchange-filter", "", "Stack Exchange response filter")
	flags.String("stackexchange-key", "", "Stack Exchange API key (optional, raises quota)")

	flags.String("reddit-client-id", "", "Reddit script-app client id")
	flags.String("reddit-client-secret", "", "Reddit script-app client secret")
	flags.String("reddit-username", "", "Reddit account username")
	flags.String("reddit-password", "", "Reddit account password")
	flags.String("reddit-user-agent", "", "User-Agent sent on Reddit requests")
	flags.Int("reddit-max-depth", 0, "Maximum comment tree depth to fetch")
	flags.Int("reddit-max-comments", 0, "Maximum number of comments to fetch")

	flags.String("docs-mirror-dir", "", "Directory of the local documentation mirror")
	flags.String("docs-host", "", "Host whose URLs resolve against the docs mirror")
	flags.Bool("docs-index", false, "Build a full-text index over the docs mirror")
	flags.String("docs-index-dir", "", "Directory for the docs index and state")
	flags.String("docs-sync-url", "", "Git remote to sync the docs mirror from")
	flags.Duration("docs-sync-timeout", 0, "How long a follower waits for a leader sync")
	flags.Int64("docs-max-file-size", 0, "Maximum page file size to index, in bytes")
	flags.Int("docs-max-results", 0, "Maximum docs search results")

	flags.String("scrape-endpoint", "", "Fallback content-extraction endpoint URL")
	flags.Duration("scrape-timeout", 0, "Timeout for fallback extraction requests")
}
