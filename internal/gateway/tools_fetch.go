package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// blockSeparator joins the ordered text blocks of one fetched resource.
const blockSeparator = "\n\n---\n\n"

// FetchArgument defines fetch parameters.
type FetchArgument struct {
	URL string `json:"url" jsonschema_description:"Absolute URL of a search result to fetch"`
}

// FetchHandler handles the fetch MCP tool.
type FetchHandler struct {
	router *Router
}

// NewFetchHandler creates a new fetch handler.
func NewFetchHandler(router *Router) *FetchHandler {
	return &FetchHandler{
		router: router,
	}
}

// Handle fetches a URL through the adapter router and returns the
// normalized transcript.
func (h *FetchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FetchArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.URL) == "" {
		return errorResult("URL cannot be empty"), nil, nil
	}

	blocks, err := h.router.Fetch(ctx, args.URL)
	if err != nil {
		return errorResult(fmt.Sprintf("Fetch failed: %s", err)), nil, nil
	}

	return textResult(strings.Join(blocks, blockSeparator)), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *FetchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fetch_content",
		Description: "Fetch a URL and return its content as normalized readable text",
	}
}

// RegisterFetchTool registers the fetch tool with an MCP server.
func RegisterFetchTool(server *mcp.Server, router *Router) {
	handler := NewFetchHandler(router)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
