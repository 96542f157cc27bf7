package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-scout-server/internal/websearch"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestSearchHandler_EmptyQuery(t *testing.T) {
	handler := NewSearchHandler(nil)

	result, _, err := handler.Handle(context.Background(), nil, SearchArgument{Query: "  "})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected error result for empty query")
	}
}

func TestSearchHandler_FormatResults(t *testing.T) {
	handler := NewSearchHandler(nil)
	results := []websearch.Result{
		{
			Title:   "How do I center a div? - Stack Overflow",
			Snippet: "I tried margin auto...",
			Link:    "https://stackoverflow.com/questions/12345/x",
			Shape: websearch.Classification{
				Shape: websearch.ShapeQA,
				QA: &websearch.QAShape{
					Questions: []websearch.QAQuestion{{Name: "How do I center a div?", Text: "body", UpvoteCount: "42", AnswerCount: "3"}},
					Answers:   []websearch.QAAnswer{{Text: "flexbox", UpvoteCount: "10"}},
				},
			},
		},
		{
			Title:   "mouseover event",
			Snippet: "Fired when...",
			Link:    "https://developer.mozilla.org/en-US/docs/Web/API/Element/mouseover_event",
			Shape: websearch.Classification{
				Shape: websearch.ShapeDoc,
				Doc:   &websearch.DocShape{Title: "mouseover event", Description: "The mouseover event is fired"},
			},
		},
		{
			Title:   "Plain result",
			Snippet: "No structured metadata",
			Link:    "https://example.com",
			Shape:   websearch.Classification{Shape: websearch.ShapeUnknown},
		},
	}

	text := resultText(t, handler.formatResults(results, "center a div"))

	if !strings.Contains(text, "Found 3 results for 'center a div'") {
		t.Errorf("Missing header: %s", text)
	}
	if !strings.Contains(text, "[qa] How do I center a div? (upvotes 42, 1 answers shown)") {
		t.Errorf("Missing qa detail line: %s", text)
	}
	if !strings.Contains(text, "[doc] The mouseover event is fired") {
		t.Errorf("Missing doc detail line: %s", text)
	}
	if strings.Contains(text, "[unknown]") {
		t.Errorf("Unknown shape should not print a detail line: %s", text)
	}
	if !strings.Contains(text, "https://example.com") {
		t.Errorf("Missing plain result link: %s", text)
	}
}

func TestSearchHandler_FormatResults_ForumExcerpt(t *testing.T) {
	handler := NewSearchHandler(nil)
	results := []websearch.Result{{
		Title: "GC pauses",
		Link:  "https://forum.example.com/t/1",
		Shape: websearch.Classification{
			Shape: websearch.ShapeForum,
			Forum: &websearch.ForumShape{
				Posts: []websearch.ForumPost{{Headline: "GC pauses", Text: strings.Repeat("x", 300)}},
			},
		},
	}}

	text := resultText(t, handler.formatResults(results, "gc"))
	if !strings.Contains(text, "[forum] "+strings.Repeat("x", 200)+"...") {
		t.Errorf("Expected truncated forum excerpt: %s", text)
	}
}

func TestSearchHandler_FormatResults_Empty(t *testing.T) {
	handler := NewSearchHandler(nil)
	text := resultText(t, handler.formatResults(nil, "no hits"))
	if !strings.Contains(text, "No results found for query: no hits") {
		t.Errorf("Unexpected empty-result text: %s", text)
	}
}

func TestSearchHandler_ToolDefinition(t *testing.T) {
	def := NewSearchHandler(nil).GetToolDefinition()
	if def.Name != "search_web" {
		t.Errorf("Unexpected tool name: %s", def.Name)
	}
	if def.Description == "" {
		t.Error("Expected a tool description")
	}
}
