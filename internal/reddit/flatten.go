package reddit

import (
	"fmt"
	"strings"
)

// Flatten walks the comment tree depth-first in source order and produces
// the transcript: the submission first, then one block per comment that
// has a body. Every visited node receives the next contextual id whether
// or not it renders, so ids are monotonically increasing in traversal
// order and descendant parent references always have a target.
//
// A parent reference that was never registered (partially loaded or
// moderator-pruned tree) resolves to the root, id 0. The walk never
// aborts mid-tree.
func Flatten(sub *Submission, tree *Tree) []string {
	ids := make(map[string]int, tree.Len()+1)
	next := 0
	assign := func(nativeID string) int {
		cid := next
		next++
		if nativeID != "" {
			ids[nativeID] = cid
		}
		return cid
	}

	// The root submission is registered before any comment is visited.
	assign(sub.Name)
	blocks := []string{renderSubmission(sub)}

	var walk func(idx int)
	walk = func(idx int) {
		n := &tree.Nodes[idx]
		cid := assign(n.ID)
		if n.Body != "" {
			parent := 0
			if p, ok := ids[n.ParentID]; ok {
				parent = p
			}
			blocks = append(blocks, renderComment(cid, parent, n))
		}
		for _, child := range n.Children {
			walk(child)
		}
	}

	if tree != nil {
		for _, root := range tree.Roots {
			walk(root)
		}
	}
	return blocks
}

func renderSubmission(sub *Submission) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[0] %s\n", sub.Title))
	sb.WriteString(fmt.Sprintf("posted by u/%s in r/%s, score %d, %d comments\n", authorName(sub.Author), sub.Subreddit, sub.Score, sub.NumComments))
	if sub.SelfText != "" {
		sb.WriteString("\n")
		sb.WriteString(sub.SelfText)
	}
	return sb.String()
}

func renderComment(cid, parent int, n *Node) string {
	return fmt.Sprintf("[%d] u/%s replying to [%d]:\n%s", cid, authorName(n.Author), parent, n.Body)
}

// authorName substitutes a placeholder for deleted or suspended accounts.
func authorName(author string) string {
	if author == "" {
		return "unknown"
	}
	return author
}
