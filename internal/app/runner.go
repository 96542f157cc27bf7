package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-scout-server/internal/config"
	"github.com/sha1n/mcp-scout-server/internal/docs"
	"github.com/sha1n/mcp-scout-server/internal/gateway"
	mcputil "github.com/sha1n/mcp-scout-server/internal/mcp"
	"github.com/sha1n/mcp-scout-server/internal/reddit"
	"github.com/sha1n/mcp-scout-server/internal/scrape"
	"github.com/sha1n/mcp-scout-server/internal/stackoverflow"
	"github.com/sha1n/mcp-scout-server/internal/websearch"
	"github.com/spf13/pflag"
)

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	StartSSEServer    func(*mcp.Server, *config.Settings) error
	CreateServer      func(*config.Settings) (*mcp.Server, func(), error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		StartSSEServer: StartSSEServer,
		CreateServer:   CreateMCPServer,
	}
}

// RunWithDeps executes the server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	// Load settings
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Validate settings for conflicting configurations
	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure logging - always use stderr to avoid corrupting the stdio
	// transport on stdout
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))

	slog.Info("Starting SCOUT MCP server", "version", version)
	config.Log(settings)

	mcpServer, cleanup, err := params.CreateServer(settings)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Start server
	if settings.Transport == "stdio" {
		// Use custom transport if provided (for testing), otherwise use stdio
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	} else {
		slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
		return params.StartSSEServer(mcpServer, settings)
	}
}

// CreateMCPServer creates the MCP server with registered tools
func CreateMCPServer(settings *config.Settings) (*mcp.Server, func(), error) {
	httpClient := &http.Client{}

	var searchClient *websearch.Client
	if settings.Google.Configured() {
		searchClient = websearch.NewClient(httpClient, &settings.Google)
	} else {
		slog.Warn("Google search not configured, search_web tool disabled")
	}

	qaClient := stackoverflow.NewClient(httpClient, &settings.StackExchange)

	var redditClient *reddit.Client
	if settings.Reddit.Configured() {
		redditClient = reddit.NewClient(httpClient, &settings.Reddit)
	} else {
		slog.Info("Reddit not configured, reddit URLs take the fallback path")
	}

	var docsStore *docs.Store
	if settings.Docs.MirrorDir != "" {
		docsStore = docs.NewStore(settings.Docs.MirrorDir)
	}

	var scrapeClient *scrape.Client
	if settings.Scrape.Endpoint != "" {
		scrapeClient = scrape.NewClient(httpClient, &settings.Scrape)
	}

	var docsSvc *docs.Service
	var cleanup func()

	// Initialize docs index service if enabled
	if settings.Docs.Index {
		svc, err := docs.NewService(&settings.Docs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create docs service: %w", err)
		}
		docsSvc = svc

		// Initialize in background context (not tied to request context)
		if err := svc.Initialize(context.Background()); err != nil {
			slog.Error("Docs index initialization failed", "error", err)
			// Close service on initialization failure and continue without it
			if closeErr := svc.Close(); closeErr != nil {
				slog.Error("Failed to close docs service", "error", closeErr)
			}
			docsSvc = nil
		} else {
			// Set up cleanup function
			cleanup = func() {
				if err := svc.Close(); err != nil {
					slog.Error("Failed to close docs service", "error", err)
				}
			}
		}
	}

	router := gateway.NewRouter(gateway.RouterConfig{
		QA:         qaClient,
		Reddit:     redditClient,
		Docs:       docsStore,
		Scraper:    scrapeClient,
		QAHost:     config.DefaultQAHost,
		DocsHost:   settings.Docs.Host,
		RedditHost: config.DefaultRedditHost,
	})

	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:    "scout-mcp",
		Version: "1.0.0",
		Search:  searchClient,
		Router:  router,
		DocsSvc: docsSvc,
	})

	return server, cleanup, nil
}
