package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-scout-server/internal/websearch"
)

// SearchArgument defines web search parameters.
type SearchArgument struct {
	Query        string `json:"query" jsonschema_description:"Free-text search query"`
	ExactTerms   string `json:"exact_terms,omitempty" jsonschema_description:"Phrase that every result must contain"`
	ExcludeTerms string `json:"exclude_terms,omitempty" jsonschema_description:"Terms that no result may contain"`
	Start        int    `json:"start,omitempty" jsonschema_description:"Result offset for pagination (0-255)"`
}

// SearchHandler handles the search MCP tool.
type SearchHandler struct {
	client *websearch.Client
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(client *websearch.Client) *SearchHandler {
	return &SearchHandler{
		client: client,
	}
}

// Handle executes the search and returns formatted, shape-tagged results.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	results, err := h.client.Search(ctx, websearch.Query{
		Query:        args.Query,
		ExactTerms:   args.ExactTerms,
		ExcludeTerms: args.ExcludeTerms,
		Start:        args.Start,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	return h.formatResults(results, args.Query), nil, nil
}

// formatResults formats classified results for the MCP response.
func (h *SearchHandler) formatResults(results []websearch.Result, queryStr string) *mcp.CallToolResult {
	if len(results) == 0 {
		return textResult(fmt.Sprintf("No results found for query: %s", queryStr))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d results for '%s':\n\n", len(results), queryStr))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("### %d. %s\n", i+1, r.Title))
		sb.WriteString(r.Link)
		sb.WriteString("\n")
		sb.WriteString(r.Snippet)
		sb.WriteString("\n")
		writeShapeDetail(&sb, r.Shape)
		sb.WriteString("\n")
	}

	return textResult(sb.String())
}

// writeShapeDetail appends a one-line summary of the classified metadata
// so the agent can judge the source kind before fetching.
func writeShapeDetail(sb *strings.Builder, c websearch.Classification) {
	switch c.Shape {
	case websearch.ShapeQA:
		q := c.QA.Questions[0]
		sb.WriteString(fmt.Sprintf("[qa] %s (upvotes %s, %d answers shown)\n", q.Name, q.UpvoteCount, len(c.QA.Answers)))
	case websearch.ShapeForum:
		post := c.Forum.Posts[0]
		excerpt := post.Text
		if excerpt == "" {
			excerpt = post.Headline
		}
		sb.WriteString(fmt.Sprintf("[forum] %s\n", truncate(excerpt, 200)))
	case websearch.ShapeDoc:
		sb.WriteString(fmt.Sprintf("[doc] %s\n", c.Doc.Description))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_web",
		Description: "Search the web for software development topics and return classified results",
	}
}

// RegisterSearchTool registers the search tool with an MCP server.
func RegisterSearchTool(server *mcp.Server, client *websearch.Client) {
	handler := NewSearchHandler(client)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}
