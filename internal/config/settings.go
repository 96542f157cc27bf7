package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Auth type constants
const (
	AuthTypeNone   = "none"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
)

// Default host routing values. Host comparison in the gateway is exact
// string equality, so these must match the URLs the search API returns.
const (
	DefaultQAHost     = "stackoverflow.com"
	DefaultDocsHost   = "developer.mozilla.org"
	DefaultRedditHost = "www.reddit.com"
)

// AuthSettings configuration for authentication
type AuthSettings struct {
	Type    string            `mapstructure:"type"` // AuthTypeNone, AuthTypeBasic, or AuthTypeAPIKey
	Basic   BasicAuthSettings `mapstructure:"basic"`
	APIKeys []string          `mapstructure:"api_keys"`
}

// BasicAuthSettings configuration for basic auth
type BasicAuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// GoogleSettings holds Google Custom Search credentials.
type GoogleSettings struct {
	EngineID string `mapstructure:"engine_id"`
	APIKey   string `mapstructure:"api_key"`
}

// Configured reports whether both CSE credentials are present.
func (g *GoogleSettings) Configured() bool {
	return g.EngineID != "" && g.APIKey != ""
}

// StackExchangeSettings holds Stack Exchange API parameters. Site and
// filter are sent identically on the question and answers calls.
type StackExchangeSettings struct {
	Site   string `mapstructure:"site"`
	Filter string `mapstructure:"filter"`
	Key    string `mapstructure:"key"` // optional, raises quota
}

// RedditSettings holds script-app credentials for the password grant plus
// the depth/breadth bounds passed to the comment-tree fetch.
type RedditSettings struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	UserAgent    string `mapstructure:"user_agent"`
	MaxDepth     int    `mapstructure:"max_depth"`
	MaxComments  int    `mapstructure:"max_comments"`
}

// Configured reports whether all four credential fields are present.
func (r *RedditSettings) Configured() bool {
	return r.ClientID != "" && r.ClientSecret != "" && r.Username != "" && r.Password != ""
}

// DocsSettings configuration for the local documentation mirror.
type DocsSettings struct {
	MirrorDir   string        `mapstructure:"mirror_dir"`
	Host        string        `mapstructure:"host"`
	Index       bool          `mapstructure:"index"` // build a bleve index and expose search_docs
	IndexDir    string        `mapstructure:"index_dir"`
	SyncURL     string        `mapstructure:"sync_url"` // optional git remote of the mirror
	SyncTimeout time.Duration `mapstructure:"sync_timeout"`
	MaxFileSize int64         `mapstructure:"max_file_size"`
	MaxResults  int           `mapstructure:"max_results"`
}

// ScrapeSettings configuration for the fallback extraction endpoint.
type ScrapeSettings struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Settings application settings
type Settings struct {
	Transport     string                `mapstructure:"transport"`
	Host          string                `mapstructure:"host"`
	Port          int                   `mapstructure:"port"`
	Auth          AuthSettings          `mapstructure:"auth"`
	Google        GoogleSettings        `mapstructure:"google"`
	StackExchange StackExchangeSettings `mapstructure:"stackexchange"`
	Reddit        RedditSettings        `mapstructure:"reddit"`
	Docs          DocsSettings          `mapstructure:"docs"`
	Scrape        ScrapeSettings        `mapstructure:"scrape"`
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("transport", "stdio")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("auth.type", AuthTypeNone)

	v.SetDefault("stackexchange.site", "stackoverflow")
	v.SetDefault("stackexchange.filter", "withbody")

	v.SetDefault("reddit.user_agent", "scout-mcp/1.0")
	v.SetDefault("reddit.max_depth", 8)
	v.SetDefault("reddit.max_comments", 100)

	v.SetDefault("docs.host", DefaultDocsHost)
	v.SetDefault("docs.index", false)
	v.SetDefault("docs.index_dir", defaultIndexDir())
	v.SetDefault("docs.sync_timeout", 60*time.Second)
	v.SetDefault("docs.max_file_size", int64(256*1024)) // 256KB
	v.SetDefault("docs.max_results", 10)

	v.SetDefault("scrape.timeout", 30*time.Second)

	// Environment variables
	v.SetEnvPrefix("SCOUT_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific env vars for nested config
	_ = v.BindEnv("auth.type", "SCOUT_MCP_AUTH_TYPE")
	_ = v.BindEnv("auth.basic.username", "SCOUT_MCP_AUTH_BASIC_USERNAME")
	_ = v.BindEnv("auth.basic.password", "SCOUT_MCP_AUTH_BASIC_PASSWORD")
	_ = v.BindEnv("auth.api_keys", "SCOUT_MCP_AUTH_API_KEYS")

	_ = v.BindEnv("google.engine_id", "SCOUT_MCP_GOOGLE_ENGINE_ID")
	_ = v.BindEnv("google.api_key", "SCOUT_MCP_GOOGLE_API_KEY")

	_ = v.BindEnv("stackexchange.site", "SCOUT_MCP_STACKEXCHANGE_SITE")
	_ = v.BindEnv("stackexchange.filter", "SCOUT_MCP_STACKEXCHANGE_FILTER")
	_ = v.BindEnv("stackexchange.key", "SCOUT_MCP_STACKEXCHANGE_KEY")

	_ = v.BindEnv("reddit.client_id", "SCOUT_MCP_REDDIT_CLIENT_ID")
	_ = v.BindEnv("reddit.client_secret", "SCOUT_MCP_REDDIT_CLIENT_SECRET")
	_ = v.BindEnv("reddit.username", "SCOUT_MCP_REDDIT_USERNAME")
	_ = v.BindEnv("reddit.password", "SCOUT_MCP_REDDIT_PASSWORD")
	_ = v.BindEnv("reddit.user_agent", "SCOUT_MCP_REDDIT_USER_AGENT")
	_ = v.BindEnv("reddit.max_depth", "SCOUT_MCP_REDDIT_MAX_DEPTH")
	_ = v.BindEnv("reddit.max_comments", "SCOUT_MCP_REDDIT_MAX_COMMENTS")

	_ = v.BindEnv("docs.mirror_dir", "SCOUT_MCP_DOCS_MIRROR_DIR")
	_ = v.BindEnv("docs.host", "SCOUT_MCP_DOCS_HOST")
	_ = v.BindEnv("docs.index", "SCOUT_MCP_DOCS_INDEX")
	_ = v.BindEnv("docs.index_dir", "SCOUT_MCP_DOCS_INDEX_DIR")
	_ = v.BindEnv("docs.sync_url", "SCOUT_MCP_DOCS_SYNC_URL")
	_ = v.BindEnv("docs.sync_timeout", "SCOUT_MCP_DOCS_SYNC_TIMEOUT")
	_ = v.BindEnv("docs.max_file_size", "SCOUT_MCP_DOCS_MAX_FILE_SIZE")
	_ = v.BindEnv("docs.max_results", "SCOUT_MCP_DOCS_MAX_RESULTS")

	_ = v.BindEnv("scrape.endpoint", "SCOUT_MCP_SCRAPE_ENDPOINT")
	_ = v.BindEnv("scrape.timeout", "SCOUT_MCP_SCRAPE_TIMEOUT")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		_ = v.BindPFlag("transport", flags.Lookup("transport"))
		_ = v.BindPFlag("host", flags.Lookup("host"))
		_ = v.BindPFlag("port", flags.Lookup("port"))
		_ = v.BindPFlag("auth.type", flags.Lookup("auth-type"))
		_ = v.BindPFlag("auth.basic.username", flags.Lookup("auth-basic-username"))
		_ = v.BindPFlag("auth.basic.password", flags.Lookup("auth-basic-password"))
		_ = v.BindPFlag("auth.api_keys", flags.Lookup("auth-api-keys"))

		_ = v.BindPFlag("google.engine_id", flags.Lookup("google-engine-id"))
		_ = v.BindPFlag("google.api_key", flags.Lookup("google-api-key"))

		_ = v.BindPFlag("stackexchange.site", flags.Lookup("stackexchange-site"))
		_ = v.BindPFlag("stackexchange.filter", flags.Lookup("stackexchange-filter"))
		_ = v.BindPFlag("stackexchange.key", flags.Lookup("stackexchange-key"))

		_ = v.BindPFlag("reddit.client_id", flags.Lookup("reddit-client-id"))
		_ = v.BindPFlag("reddit.client_secret", flags.Lookup("reddit-client-secret"))
		_ = v.BindPFlag("reddit.username", flags.Lookup("reddit-username"))
		_ = v.BindPFlag("reddit.password", flags.Lookup("reddit-password"))
		_ = v.BindPFlag("reddit.user_agent", flags.Lookup("reddit-user-agent"))
		_ = v.BindPFlag("reddit.max_depth", flags.Lookup("reddit-max-depth"))
		_ = v.BindPFlag("reddit.max_comments", flags.Lookup("reddit-max-comments"))

		_ = v.BindPFlag("docs.mirror_dir", flags.Lookup("docs-mirror-dir"))
		_ = v.BindPFlag("docs.host", flags.Lookup("docs-host"))
		_ = v.BindPFlag("docs.index", flags.Lookup("docs-index"))
		_ = v.BindPFlag("docs.index_dir", flags.Lookup("docs-index-dir"))
		_ = v.BindPFlag("docs.sync_url", flags.Lookup("docs-sync-url"))
		_ = v.BindPFlag("docs.sync_timeout", flags.Lookup("docs-sync-timeout"))
		_ = v.BindPFlag("docs.max_file_size", flags.Lookup("docs-max-file-size"))
		_ = v.BindPFlag("docs.max_results", flags.Lookup("docs-max-results"))

		_ = v.BindPFlag("scrape.endpoint", flags.Lookup("scrape-endpoint"))
		_ = v.BindPFlag("scrape.timeout", flags.Lookup("scrape-timeout"))
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// Handle explicit parsing of API keys if provided via env var as comma-separated string
	apiKeysEnv := os.Getenv("SCOUT_MCP_AUTH_API_KEYS")
	if apiKeysEnv != "" {
		if len(settings.Auth.APIKeys) == 0 || (len(settings.Auth.APIKeys) == 1 && strings.Contains(settings.Auth.APIKeys[0], ",")) {
			settings.Auth.APIKeys = strings.Split(apiKeysEnv, ",")
		}
	}

	// Trim spaces from API keys
	for i := range settings.Auth.APIKeys {
		settings.Auth.APIKeys[i] = strings.TrimSpace(settings.Auth.APIKeys[i])
	}

	// Expand home directory in filesystem paths
	settings.Docs.MirrorDir = expandHomeDir(settings.Docs.MirrorDir)
	settings.Docs.IndexDir = expandHomeDir(settings.Docs.IndexDir)

	return &settings, nil
}

// defaultIndexDir returns the default directory for the docs index.
func defaultIndexDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scout-mcp"
	}
	return filepath.Join(home, ".scout-mcp")
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// ValidateSettings checks for conflicting configurations.
// Returns an error if the settings contain mutually exclusive or incomplete config.
func ValidateSettings(s *Settings) error {
	// Validate transport type
	switch s.Transport {
	case "stdio", "sse":
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	hasBasicCreds := s.Auth.Basic.Username != "" || s.Auth.Basic.Password != ""
	hasAPIKeys := len(s.Auth.APIKeys) > 0

	switch s.Auth.Type {
	case AuthTypeNone, "":
		if hasBasicCreds || hasAPIKeys {
			return errors.New("auth-type 'none' is incompatible with auth credentials")
		}
	case AuthTypeBasic:
		if hasAPIKeys {
			return errors.New("auth-type 'basic' is mutually exclusive with auth-api-keys")
		}
		if s.Auth.Basic.Username == "" || s.Auth.Basic.Password == "" {
			return errors.New("auth-type 'basic' requires both username and password")
		}
	case AuthTypeAPIKey:
		if hasBasicCreds {
			return errors.New("auth-type 'apikey' is mutually exclusive with basic auth credentials")
		}
		if !hasAPIKeys {
			return errors.New("auth-type 'apikey' requires at least one API key")
		}
	default:
		return errors.New("unknown auth-type: " + s.Auth.Type)
	}

	// Partial credentials are almost certainly a deployment mistake, so
	// reject them instead of silently disabling the capability.
	if (s.Google.EngineID != "" || s.Google.APIKey != "") && !s.Google.Configured() {
		return errors.New("google search requires both engine id and API key")
	}

	hasAnyRedditCred := s.Reddit.ClientID != "" || s.Reddit.ClientSecret != "" ||
		s.Reddit.Username != "" || s.Reddit.Password != ""
	if hasAnyRedditCred && !s.Reddit.Configured() {
		return errors.New("reddit requires client id, client secret, username and password")
	}

	return validateDocsSettings(&s.Docs)
}

// validateDocsSettings validates the documentation mirror configuration
func validateDocsSettings(d *DocsSettings) error {
	if d.Index && d.MirrorDir == "" {
		return errors.New("docs-index requires a mirror directory (docs-mirror-dir)")
	}

	if d.SyncURL != "" && d.MirrorDir == "" {
		return errors.New("docs-sync-url requires a mirror directory (docs-mirror-dir)")
	}

	if d.MirrorDir != "" {
		if d.Host == "" {
			return errors.New("docs-host cannot be empty")
		}
		if d.SyncTimeout <= 0 {
			return errors.New("docs-sync-timeout must be positive")
		}
		if d.MaxFileSize <= 0 {
			return errors.New("docs-max-file-size must be positive")
		}
		if d.MaxResults <= 0 {
			return errors.New("docs-max-results must be positive")
		}
	}

	return nil
}
