package stackoverflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/sha1n/mcp-scout-server/internal/config"
)

func TestClient_SendsSiteAndFilterOnBothCalls(t *testing.T) {
	var gotParams []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParams = append(gotParams, r.URL.Query())
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(srv.Close)

	orig := apiBase
	apiBase = srv.URL
	t.Cleanup(func() { apiBase = orig })

	client := NewClient(srv.Client(), &config.StackExchangeSettings{
		Site:   "stackoverflow",
		Filter: "withbody",
		Key:    "quota-key",
	})

	if _, err := client.Question(context.Background(), "42"); err != nil {
		t.Fatalf("Question failed: %v", err)
	}
	if _, err := client.Answers(context.Background(), "42"); err != nil {
		t.Fatalf("Answers failed: %v", err)
	}

	if len(gotParams) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(gotParams))
	}
	for i, params := range gotParams {
		if params.Get("site") != "stackoverflow" {
			t.Errorf("Request %d: site = %q", i, params.Get("site"))
		}
		if params.Get("filter") != "withbody" {
			t.Errorf("Request %d: filter = %q", i, params.Get("filter"))
		}
		if params.Get("key") != "quota-key" {
			t.Errorf("Request %d: key = %q", i, params.Get("key"))
		}
	}
}

func TestClient_OmitsKeyWhenUnset(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(srv.Close)

	orig := apiBase
	apiBase = srv.URL
	t.Cleanup(func() { apiBase = orig })

	client := NewClient(srv.Client(), &config.StackExchangeSettings{Site: "stackoverflow", Filter: "withbody"})
	if _, err := client.Question(context.Background(), "42"); err != nil {
		t.Fatalf("Question failed: %v", err)
	}

	if got.Has("key") {
		t.Errorf("Expected key param to be omitted, got %q", got.Get("key"))
	}
}

func TestClient_DecodesQuestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(questionBody))
	}))
	t.Cleanup(srv.Close)

	orig := apiBase
	apiBase = srv.URL
	t.Cleanup(func() { apiBase = orig })

	client := NewClient(srv.Client(), &config.StackExchangeSettings{Site: "stackoverflow", Filter: "withbody"})
	questions, err := client.Question(context.Background(), "12345")
	if err != nil {
		t.Fatalf("Question failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(questions))
	}

	q := questions[0]
	if q.QuestionID != 12345 || q.Title != "How do I center a div?" || q.Owner.Reputation != 1200 {
		t.Errorf("Unexpected question: %+v", q)
	}
}
