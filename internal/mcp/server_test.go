package mcp

import (
	"net/http"
	"testing"
	"time"

	"github.com/sha1n/mcp-scout-server/internal/config"
	"github.com/sha1n/mcp-scout-server/internal/docs"
	"github.com/sha1n/mcp-scout-server/internal/gateway"
	"github.com/sha1n/mcp-scout-server/internal/stackoverflow"
	"github.com/sha1n/mcp-scout-server/internal/websearch"
)

func TestCreateServer(t *testing.T) {
	cfg := ServerConfig{
		Name:    "test-server",
		Version: "1.0.0",
	}

	server := CreateServer(cfg)
	if server == nil {
		t.Fatal("Expected server to be created")
	}
}

func TestCreateServer_EmptyConfig(t *testing.T) {
	server := CreateServer(ServerConfig{})
	if server == nil {
		t.Fatal("Expected server to be created even with empty config")
	}
}

func TestCreateServer_WithAllComponents(t *testing.T) {
	searchClient := websearch.NewClient(http.DefaultClient, &config.GoogleSettings{
		EngineID: "engine",
		APIKey:   "key",
	})

	router := gateway.NewRouter(gateway.RouterConfig{
		QA:     stackoverflow.NewClient(http.DefaultClient, &config.StackExchangeSettings{Site: "stackoverflow", Filter: "withbody"}),
		QAHost: config.DefaultQAHost,
	})

	svc, err := docs.NewService(&config.DocsSettings{
		MirrorDir:   t.TempDir(),
		Host:        config.DefaultDocsHost,
		Index:       true,
		IndexDir:    t.TempDir(),
		SyncTimeout: 5 * time.Second,
		MaxFileSize: 256 * 1024,
		MaxResults:  10,
	})
	if err != nil {
		t.Fatalf("Failed to create docs service: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })

	cfg := ServerConfig{
		Name:    "test-server",
		Version: "1.0.0",
		Search:  searchClient,
		Router:  router,
		DocsSvc: svc,
	}

	server := CreateServer(cfg)
	if server == nil {
		t.Fatal("Expected server to be created with all components")
	}

	// The MCP SDK doesn't expose a way to list registered tools, so we
	// just verify the server was created successfully.
}

func TestCreateServer_WithoutOptionalComponents(t *testing.T) {
	router := gateway.NewRouter(gateway.RouterConfig{
		QA:     stackoverflow.NewClient(http.DefaultClient, &config.StackExchangeSettings{Site: "stackoverflow", Filter: "withbody"}),
		QAHost: config.DefaultQAHost,
	})

	cfg := ServerConfig{
		Name:    "test-server",
		Version: "1.0.0",
		Router:  router,
		// Search and DocsSvc are nil: their tools are simply not registered.
	}

	server := CreateServer(cfg)
	if server == nil {
		t.Fatal("Expected server to be created without optional components")
	}
}
