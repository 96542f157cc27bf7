package websearch

import (
	"encoding/json"
	"testing"
)

const qaPagemap = `{
	"question": [{"name": "How do I center a div?", "text": "I tried margin auto", "upvotecount": "42", "answercount": "3"}],
	"answer": [{"text": "Use flexbox", "upvotecount": "10"}]
}`

const forumPagemap = `{
	"discussionforumposting": [{"headline": "Weird GC pauses", "text": "We see 200ms pauses under load"}],
	"metatags": [{"og:title": "Weird GC pauses", "og:description": "Thread about GC pauses"}]
}`

const docPagemap = `{
	"metatags": [{"og:title": "Element: mouseover event", "og:description": "The mouseover event is fired..."}]
}`

func TestClassify_QA(t *testing.T) {
	c := Classify(json.RawMessage(qaPagemap))

	if c.Shape != ShapeQA {
		t.Fatalf("Expected ShapeQA, got %s", c.Shape)
	}
	if c.QA == nil {
		t.Fatal("Expected QA payload")
	}
	if c.QA.Questions[0].Name != "How do I center a div?" {
		t.Errorf("Unexpected question name: %s", c.QA.Questions[0].Name)
	}
	if len(c.QA.Answers) != 1 || c.QA.Answers[0].UpvoteCount != "10" {
		t.Errorf("Unexpected answers: %+v", c.QA.Answers)
	}
}

func TestClassify_Forum(t *testing.T) {
	c := Classify(json.RawMessage(forumPagemap))

	if c.Shape != ShapeForum {
		t.Fatalf("Expected ShapeForum, got %s", c.Shape)
	}
	if c.Forum.Title != "Weird GC pauses" {
		t.Errorf("Unexpected title: %s", c.Forum.Title)
	}
	if len(c.Forum.Posts) != 1 {
		t.Errorf("Expected 1 post, got %d", len(c.Forum.Posts))
	}
}

func TestClassify_Doc(t *testing.T) {
	c := Classify(json.RawMessage(docPagemap))

	if c.Shape != ShapeDoc {
		t.Fatalf("Expected ShapeDoc, got %s", c.Shape)
	}
	if c.Doc.Title != "Element: mouseover event" {
		t.Errorf("Unexpected title: %s", c.Doc.Title)
	}
}

func TestClassify_ForumWinsOverDoc(t *testing.T) {
	// A forum block also carries metatags that would parse as a doc.
	// Priority order must pick forum.
	c := Classify(json.RawMessage(forumPagemap))
	if c.Shape != ShapeForum {
		t.Errorf("Expected forum to win over doc, got %s", c.Shape)
	}
}

func TestClassify_UnknownPassthrough(t *testing.T) {
	raw := json.RawMessage(`{"videoobject": [{"duration": "PT3M"}]}`)
	c := Classify(raw)

	if c.Shape != ShapeUnknown {
		t.Fatalf("Expected ShapeUnknown, got %s", c.Shape)
	}
	if string(c.Raw) != string(raw) {
		t.Error("Expected raw block to pass through untouched")
	}
}

func TestClassify_Empty(t *testing.T) {
	c := Classify(nil)
	if c.Shape != ShapeUnknown {
		t.Errorf("Expected ShapeUnknown for empty block, got %s", c.Shape)
	}
}

func TestClassify_MalformedFallsThrough(t *testing.T) {
	tests := []struct {
		name    string
		pagemap string
		want    Shape
	}{
		{
			name:    "numeric upvotecount disqualifies qa",
			pagemap: `{"question": [{"name": "q", "text": "t", "upvotecount": 42}], "answer": []}`,
			want:    ShapeUnknown,
		},
		{
			name:    "question missing name disqualifies qa",
			pagemap: `{"question": [{"text": "t"}], "answer": []}`,
			want:    ShapeUnknown,
		},
		{
			name:    "empty question array disqualifies qa",
			pagemap: `{"question": [], "answer": [{"text": "a"}]}`,
			want:    ShapeUnknown,
		},
		{
			name:    "forum without metatags falls through to unknown",
			pagemap: `{"discussionforumposting": [{"headline": "h"}]}`,
			want:    ShapeUnknown,
		},
		{
			name: "malformed forum posts with qa fields falls through to qa",
			pagemap: `{
				"discussionforumposting": "not an array",
				"metatags": [{"og:title": "t", "og:description": "d"}],
				"question": [{"name": "q", "text": "t", "upvotecount": "1", "answercount": "1"}],
				"answer": []
			}`,
			want: ShapeQA,
		},
		{
			name:    "metatags without description falls through",
			pagemap: `{"metatags": [{"og:title": "title only"}]}`,
			want:    ShapeUnknown,
		},
		{
			name:    "not a json object",
			pagemap: `["a", "b"]`,
			want:    ShapeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(json.RawMessage(tt.pagemap))
			if c.Shape != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, c.Shape)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	raw := json.RawMessage(qaPagemap)
	first := Classify(raw)
	for i := 0; i < 10; i++ {
		if got := Classify(raw); got.Shape != first.Shape {
			t.Fatalf("Classification changed between runs: %s vs %s", first.Shape, got.Shape)
		}
	}
}

func TestClassify_MetatagsFallbackKeys(t *testing.T) {
	c := Classify(json.RawMessage(`{"metatags": [{"title": "Plain Title", "description": "Plain description"}]}`))
	if c.Shape != ShapeDoc {
		t.Fatalf("Expected ShapeDoc, got %s", c.Shape)
	}
	if c.Doc.Title != "Plain Title" || c.Doc.Description != "Plain description" {
		t.Errorf("Unexpected doc payload: %+v", c.Doc)
	}
}
