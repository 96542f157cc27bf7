package stackoverflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/sha1n/mcp-scout-server/internal/domain"
	"golang.org/x/sync/errgroup"
)

// AssembleQA fetches a question and its answers and merges them into an
// ordered transcript: the question block first, then answers in the order
// the API returned them. Answers are deliberately not re-sorted by score
// or acceptance; the consumer sees the site's own ordering and the per
// answer markers instead.
//
// The two fetches are independent and run concurrently; both must finish
// before assembly. A question with zero items is terminal
// (domain.ErrUpstreamEmpty); zero answers is a legitimate unanswered
// question.
func (c *Client) AssembleQA(ctx context.Context, questionID string) ([]string, error) {
	if strings.TrimSpace(questionID) == "" {
		return nil, fmt.Errorf("%w: question id cannot be empty", domain.ErrInvalidInput)
	}

	var (
		questions []Question
		answers   []Answer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = c.Question(gctx, questionID)
		return err
	})
	g.Go(func() error {
		var err error
		answers, err = c.Answers(gctx, questionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: question %s", domain.ErrUpstreamEmpty, questionID)
	}

	blocks := make([]string, 0, len(answers)+1)
	blocks = append(blocks, renderQuestion(&questions[0]))
	for i := range answers {
		blocks = append(blocks, renderAnswer(&answers[i]))
	}
	return blocks, nil
}

// renderQuestion produces the two-part question block: title heading, then
// attribution and body.
func renderQuestion(q *Question) string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(q.Title)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("asked by %s (reputation %d), score %d, %d answers\n", ownerName(q.Owner), q.Owner.Reputation, q.Score, q.AnswerCount))
	if len(q.Tags) > 0 {
		sb.WriteString("tags: ")
		sb.WriteString(strings.Join(q.Tags, ", "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(q.Body)
	return sb.String()
}

// renderAnswer produces an answer block with an explicit accepted marker
// so a downstream consumer can tell answers apart without re-fetching.
func renderAnswer(a *Answer) string {
	marker := "Unaccepted"
	if a.IsAccepted {
		marker = "Accepted"
	}
	return fmt.Sprintf("%s answer (score %d):\n\n%s", marker, a.Score, a.Body)
}

func ownerName(o Owner) string {
	if o.DisplayName == "" {
		return "unknown"
	}
	return o.DisplayName
}
