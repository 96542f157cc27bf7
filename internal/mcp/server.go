package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-scout-server/internal/docs"
	"github.com/sha1n/mcp-scout-server/internal/gateway"
	"github.com/sha1n/mcp-scout-server/internal/websearch"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name    string
	Version string

	Search  *websearch.Client // nil when Google CSE is not configured
	Router  *gateway.Router
	DocsSvc *docs.Service // nil when the docs index is disabled
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	if cfg.Search != nil {
		gateway.RegisterSearchTool(s, cfg.Search)
	}
	if cfg.Router != nil {
		gateway.RegisterFetchTool(s, cfg.Router)
	}
	if cfg.DocsSvc != nil {
		gateway.RegisterDocsSearchTool(s, cfg.DocsSvc)
	}

	return s
}
