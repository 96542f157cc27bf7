package reddit

import (
	"fmt"
	"strings"
	"testing"
)

func testSubmission() *Submission {
	return &Submission{
		Name:        "t3_root",
		Title:       "Why is my goroutine leaking?",
		SelfText:    "Minimal repro attached.",
		Author:      "op",
		Subreddit:   "golang",
		Score:       42,
		NumComments: 3,
	}
}

func TestFlatten_SubmissionFirst(t *testing.T) {
	blocks := Flatten(testSubmission(), &Tree{})

	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block for empty tree, got %d", len(blocks))
	}
	if !strings.HasPrefix(blocks[0], "[0] Why is my goroutine leaking?") {
		t.Errorf("Unexpected submission block: %s", blocks[0])
	}
	if !strings.Contains(blocks[0], "posted by u/op in r/golang, score 42, 3 comments") {
		t.Errorf("Missing attribution: %s", blocks[0])
	}
	if !strings.Contains(blocks[0], "Minimal repro attached.") {
		t.Errorf("Missing selftext: %s", blocks[0])
	}
}

func TestFlatten_MonotonicIDsInTraversalOrder(t *testing.T) {
	// root -> a(1) -> b(2), then c(3)
	tree := &Tree{
		Nodes: []Node{
			{ID: "t1_a", ParentID: "t3_root", Author: "alice", Body: "first", Children: []int{1}},
			{ID: "t1_b", ParentID: "t1_a", Author: "bob", Body: "second"},
			{ID: "t1_c", ParentID: "t3_root", Author: "carol", Body: "third"},
		},
		Roots: []int{0, 2},
	}

	blocks := Flatten(testSubmission(), tree)
	if len(blocks) != 4 {
		t.Fatalf("Expected 4 blocks, got %d", len(blocks))
	}

	want := []string{
		"[1] u/alice replying to [0]:\nfirst",
		"[2] u/bob replying to [1]:\nsecond",
		"[3] u/carol replying to [0]:\nthird",
	}
	for i, w := range want {
		if blocks[i+1] != w {
			t.Errorf("Block %d:\ngot:  %q\nwant: %q", i+1, blocks[i+1], w)
		}
	}
}

func TestFlatten_BodylessNodeConsumesID(t *testing.T) {
	// The middle node is a removed comment: it renders nothing but its
	// child must still reference it by the id it consumed.
	tree := &Tree{
		Nodes: []Node{
			{ID: "t1_a", ParentID: "t3_root", Author: "alice", Body: "visible", Children: []int{1}},
			{ID: "t1_b", ParentID: "t1_a", Author: "", Body: "", Children: []int{2}},
			{ID: "t1_c", ParentID: "t1_b", Author: "carol", Body: "reply to removed"},
		},
		Roots: []int{0},
	}

	blocks := Flatten(testSubmission(), tree)
	if len(blocks) != 3 {
		t.Fatalf("Expected 3 blocks (removed comment renders nothing), got %d", len(blocks))
	}
	if !strings.HasPrefix(blocks[2], "[3] u/carol replying to [2]:") {
		t.Errorf("Expected child to reference the skipped node's id 2, got: %s", blocks[2])
	}
}

func TestFlatten_DanglingParentResolvesToRoot(t *testing.T) {
	tree := &Tree{
		Nodes: []Node{
			{ID: "t1_a", ParentID: "t1_never_loaded", Author: "alice", Body: "orphan"},
		},
		Roots: []int{0},
	}

	blocks := Flatten(testSubmission(), tree)
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if !strings.Contains(blocks[1], "replying to [0]:") {
		t.Errorf("Expected dangling parent to resolve to root, got: %s", blocks[1])
	}
}

func TestFlatten_NilTree(t *testing.T) {
	blocks := Flatten(testSubmission(), nil)
	if len(blocks) != 1 {
		t.Errorf("Expected just the submission block, got %d", len(blocks))
	}
}

func TestFlatten_DeletedAuthorPlaceholder(t *testing.T) {
	tree := &Tree{
		Nodes: []Node{
			{ID: "t1_a", ParentID: "t3_root", Author: "", Body: "orphaned text"},
		},
		Roots: []int{0},
	}

	blocks := Flatten(testSubmission(), tree)
	if !strings.Contains(blocks[1], "u/unknown") {
		t.Errorf("Expected unknown author placeholder, got: %s", blocks[1])
	}
}

func TestFlatten_DeterministicAcrossRuns(t *testing.T) {
	tree := &Tree{
		Nodes: []Node{
			{ID: "t1_a", ParentID: "t3_root", Author: "alice", Body: "a", Children: []int{1, 2}},
			{ID: "t1_b", ParentID: "t1_a", Author: "bob", Body: "b"},
			{ID: "t1_c", ParentID: "t1_a", Author: "carol", Body: "c"},
		},
		Roots: []int{0},
	}

	first := strings.Join(Flatten(testSubmission(), tree), "\n")
	for i := 0; i < 5; i++ {
		got := strings.Join(Flatten(testSubmission(), tree), "\n")
		if got != first {
			t.Fatal("Flatten output changed between runs")
		}
	}
}

func TestFlatten_WideTree(t *testing.T) {
	tree := &Tree{}
	for i := 0; i < 50; i++ {
		tree.Nodes = append(tree.Nodes, Node{
			ID:       fmt.Sprintf("t1_%d", i),
			ParentID: "t3_root",
			Author:   "u",
			Body:     fmt.Sprintf("comment %d", i),
		})
		tree.Roots = append(tree.Roots, i)
	}

	blocks := Flatten(testSubmission(), tree)
	if len(blocks) != 51 {
		t.Fatalf("Expected 51 blocks, got %d", len(blocks))
	}
	for i := 1; i < len(blocks); i++ {
		prefix := fmt.Sprintf("[%d] ", i)
		if !strings.HasPrefix(blocks[i], prefix) {
			t.Fatalf("Block %d does not start with %q: %s", i, prefix, blocks[i])
		}
	}
}
