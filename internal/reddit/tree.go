package reddit

import (
	"encoding/json"
	"fmt"

	"github.com/sha1n/mcp-scout-server/internal/domain"
)

// Submission is the root of a thread. It is not a comment node; the
// flattener registers its fullname as contextual id 0.
type Submission struct {
	Name        string `json:"name"` // fullname, e.g. t3_abc123
	Title       string `json:"title"`
	SelfText    string `json:"selftext"`
	Author      string `json:"author"`
	Subreddit   string `json:"subreddit"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
}

// Node is one comment in the arena. An empty Body marks a placeholder
// (removed or deleted comment) that renders nothing but keeps its slot in
// the id sequence so descendant references still resolve.
type Node struct {
	ID       string // fullname, e.g. t1_def456, globally unique in the tree
	ParentID string
	Author   string
	Body     string
	Children []int // arena indexes, in source order
}

// Tree is an index-based arena of comment nodes. Nodes are stored in the
// order they were parsed; Roots lists the arena indexes of the top-level
// comments in source order. The arena avoids pointer cycles entirely: the
// tree is consumed once by Flatten and discarded.
type Tree struct {
	Nodes []Node
	Roots []int
}

// Len returns the number of parsed nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}

// Wire format of a listing: {kind: "Listing", data: {children: [...]}}.
// Each child is a kinded thing; comments are kind "t1". A comment's
// replies field is either a nested listing or the empty string.
type listing struct {
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type commentData struct {
	Name     string          `json:"name"`
	ParentID string          `json:"parent_id"`
	Author   string          `json:"author"`
	Body     string          `json:"body"`
	Replies  json.RawMessage `json:"replies"`
}

// parseSubmission extracts the submission from the first listing of a
// comments response. Returns nil if the listing is empty.
func parseSubmission(raw json.RawMessage) (*Submission, error) {
	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("%w: decoding submission listing: %w", domain.ErrUpstreamFailure, err)
	}
	for _, child := range l.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var sub Submission
		if err := json.Unmarshal(child.Data, &sub); err != nil {
			return nil, fmt.Errorf("%w: decoding submission: %w", domain.ErrUpstreamFailure, err)
		}
		return &sub, nil
	}
	return nil, nil
}

// ParseTree materializes the comment listing into an arena. Children are
// appended in the order the source supplies them; "more" stubs are not
// materialized (the depth/breadth bounds were already applied upstream),
// which is one way descendants end up with dangling parent references.
func ParseTree(raw json.RawMessage) (*Tree, error) {
	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("%w: decoding comment listing: %w", domain.ErrUpstreamFailure, err)
	}

	t := &Tree{}
	for _, child := range l.Data.Children {
		idx, ok, err := t.addThing(child)
		if err != nil {
			return nil, err
		}
		if ok {
			t.Roots = append(t.Roots, idx)
		}
	}
	return t, nil
}

// addThing parses one kinded thing into the arena and returns its index.
// Non-comment kinds report ok=false and are skipped.
func (t *Tree) addThing(th thing) (int, bool, error) {
	if th.Kind != "t1" {
		return 0, false, nil
	}

	var c commentData
	if err := json.Unmarshal(th.Data, &c); err != nil {
		return 0, false, fmt.Errorf("%w: decoding comment: %w", domain.ErrUpstreamFailure, err)
	}

	// Reserve the slot before descending so arena order is pre-order.
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{
		ID:       c.Name,
		ParentID: c.ParentID,
		Author:   c.Author,
		Body:     c.Body,
	})

	children, err := t.addReplies(c.Replies)
	if err != nil {
		return 0, false, err
	}
	t.Nodes[idx].Children = children
	return idx, true, nil
}

// addReplies parses a replies field, which is either a nested listing or
// the empty string for leaf comments.
func (t *Tree) addReplies(raw json.RawMessage) ([]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var empty string
	if err := json.Unmarshal(raw, &empty); err == nil {
		return nil, nil // leaf: replies is ""
	}

	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("%w: decoding replies listing: %w", domain.ErrUpstreamFailure, err)
	}

	var children []int
	for _, child := range l.Data.Children {
		idx, ok, err := t.addThing(child)
		if err != nil {
			return nil, err
		}
		if ok {
			children = append(children, idx)
		}
	}
	return children, nil
}
