package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/sha1n/mcp-scout-server/internal/docs"
	"github.com/sha1n/mcp-scout-server/internal/domain"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DocsSearchArgument defines local docs search parameters.
type DocsSearchArgument struct {
	Query string `json:"query" jsonschema_description:"Search query over the local documentation mirror"`
}

// DocsSearchHandler handles the search_docs MCP tool.
type DocsSearchHandler struct {
	service *docs.Service
}

// NewDocsSearchHandler creates a new docs search handler.
func NewDocsSearchHandler(service *docs.Service) *DocsSearchHandler {
	return &DocsSearchHandler{
		service: service,
	}
}

// Handle executes the docs search and returns formatted results.
func (h *DocsSearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args DocsSearchArgument) (*mcp.CallToolResult, any, error) {
	if !h.service.IsReady() {
		return errorResult("Docs search is not available. The documentation mirror is still being indexed. Please try again later."), nil, nil
	}

	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	index, err := h.service.Index()
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to access index: %s", err)), nil, nil
	}

	searchReq := bleve.NewSearchRequest(h.buildQuery(args.Query))
	searchReq.Size = h.service.GetSettings().MaxResults
	searchReq.Fields = []string{domain.DocFieldSlug, domain.DocFieldTitle}
	searchReq.Highlight = bleve.NewHighlight()
	searchReq.Highlight.AddField(domain.DocFieldContent)

	results, err := index.Search(searchReq)
	if err != nil {
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	return h.formatResults(results, args.Query), nil, nil
}

// buildQuery matches the content plus boosted title and headings, the
// same shape as a symbol-boosted code search.
func (h *DocsSearchHandler) buildQuery(queryStr string) *query.DisjunctionQuery {
	contentQuery := bleve.NewMatchQuery(queryStr)
	contentQuery.SetField(domain.DocFieldContent)

	headingsQuery := bleve.NewMatchQuery(queryStr)
	headingsQuery.SetField(domain.DocFieldHeadings)
	headingsQuery.SetBoost(3.0)

	titleQuery := bleve.NewMatchQuery(queryStr)
	titleQuery.SetField(domain.DocFieldTitle)
	titleQuery.SetBoost(5.0)

	return bleve.NewDisjunctionQuery(contentQuery, headingsQuery, titleQuery)
}

// formatResults formats bleve search results for the MCP response.
func (h *DocsSearchHandler) formatResults(results *bleve.SearchResult, queryStr string) *mcp.CallToolResult {
	if results.Total == 0 {
		return textResult(fmt.Sprintf("No results found for query: %s", queryStr))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d results for '%s':\n\n", results.Total, queryStr))

	for i, hit := range results.Hits {
		title := ""
		slug := ""
		if val, ok := hit.Fields[domain.DocFieldTitle].(string); ok {
			title = val
		}
		if val, ok := hit.Fields[domain.DocFieldSlug].(string); ok {
			slug = val
		}

		sb.WriteString(fmt.Sprintf("### %d. %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("**Path**: %s\n", slug))
		sb.WriteString(fmt.Sprintf("**Score**: %.4f\n\n", hit.Score))

		if len(hit.Fragments) > 0 {
			if fragments, ok := hit.Fragments[domain.DocFieldContent]; ok {
				for _, fragment := range fragments {
					sb.WriteString(fragment)
					sb.WriteString("\n")
				}
			}
		}

		sb.WriteString("\n")
	}

	if results.Total > uint64(len(results.Hits)) {
		sb.WriteString(fmt.Sprintf("... and %d more results\n", results.Total-uint64(len(results.Hits))))
	}

	return textResult(sb.String())
}

// GetToolDefinition returns the MCP tool definition.
func (h *DocsSearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_docs",
		Description: "Search the locally mirrored documentation corpus using full-text search",
	}
}

// RegisterDocsSearchTool registers the docs search tool with an MCP server.
func RegisterDocsSearchTool(server *mcp.Server, service *docs.Service) {
	handler := NewDocsSearchHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
