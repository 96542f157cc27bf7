package websearch

import "encoding/json"

// Shape identifies the structural kind of a result's pagemap block. The
// block carries no discriminator field, so the kind is determined by which
// fields parse, in strictly decreasing field-set specificity.
type Shape int

const (
	// ShapeUnknown retains the block verbatim; it is never an error.
	ShapeUnknown Shape = iota
	// ShapeForum has a discussion-forum-posting array and a metatags array.
	ShapeForum
	// ShapeQA has a question array and an answer array.
	ShapeQA
	// ShapeDoc has a metatags array carrying title and description.
	ShapeDoc
)

// String returns the shape name for display.
func (s Shape) String() string {
	switch s {
	case ShapeForum:
		return "forum"
	case ShapeQA:
		return "qa"
	case ShapeDoc:
		return "doc"
	default:
		return "unknown"
	}
}

// ForumPost is one post of a forum-shaped result.
type ForumPost struct {
	Headline string `json:"headline"`
	Text     string `json:"text"`
}

// ForumShape is a discussion-forum result.
type ForumShape struct {
	Posts       []ForumPost
	Title       string
	Description string
}

// QAQuestion is the question record of a Q&A-shaped result. Counts are
// strings on the wire; a numeric value disqualifies the shape.
type QAQuestion struct {
	Name        string `json:"name"`
	Text        string `json:"text"`
	UpvoteCount string `json:"upvotecount"`
	AnswerCount string `json:"answercount"`
}

// QAAnswer is one answer record of a Q&A-shaped result.
type QAAnswer struct {
	Text        string `json:"text"`
	UpvoteCount string `json:"upvotecount"`
}

// QAShape is a question-and-answers result.
type QAShape struct {
	Questions []QAQuestion
	Answers   []QAAnswer
}

// DocShape is a documentation page result.
type DocShape struct {
	Title       string
	Description string
}

// Classification is the closed variant produced by Classify. Exactly one
// of Forum, QA and Doc is non-nil unless Shape is ShapeUnknown, in which
// case Raw holds the original block untouched.
type Classification struct {
	Shape Shape
	Forum *ForumShape
	QA    *QAShape
	Doc   *DocShape
	Raw   json.RawMessage
}

// Classify tags a raw pagemap block with its structural shape. Shapes are
// tried in fixed priority order (forum, qa, doc); the first whose required
// fields are present and well-typed wins. Malformed values inside a shape
// disqualify that shape only; nothing here ever fails the whole result.
func Classify(raw json.RawMessage) Classification {
	if len(raw) == 0 {
		return Classification{Shape: ShapeUnknown}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Classification{Shape: ShapeUnknown, Raw: raw}
	}

	if forum, ok := parseForum(fields); ok {
		return Classification{Shape: ShapeForum, Forum: forum}
	}
	if qa, ok := parseQA(fields); ok {
		return Classification{Shape: ShapeQA, QA: qa}
	}
	if doc, ok := parseDoc(fields); ok {
		return Classification{Shape: ShapeDoc, Doc: doc}
	}
	return Classification{Shape: ShapeUnknown, Raw: raw}
}

func parseForum(fields map[string]json.RawMessage) (*ForumShape, bool) {
	postsRaw, ok := fields["discussionforumposting"]
	if !ok {
		return nil, false
	}
	tags, ok := parseMetatags(fields)
	if !ok {
		return nil, false
	}

	var posts []ForumPost
	if err := json.Unmarshal(postsRaw, &posts); err != nil || len(posts) == 0 {
		return nil, false
	}

	title, description := metaTitleDescription(tags)
	return &ForumShape{Posts: posts, Title: title, Description: description}, true
}

func parseQA(fields map[string]json.RawMessage) (*QAShape, bool) {
	questionRaw, ok := fields["question"]
	if !ok {
		return nil, false
	}
	answerRaw, ok := fields["answer"]
	if !ok {
		return nil, false
	}

	var questions []QAQuestion
	if err := json.Unmarshal(questionRaw, &questions); err != nil || len(questions) == 0 {
		return nil, false
	}
	for _, q := range questions {
		if q.Name == "" || q.Text == "" {
			return nil, false
		}
	}

	var answers []QAAnswer
	if err := json.Unmarshal(answerRaw, &answers); err != nil {
		return nil, false
	}

	return &QAShape{Questions: questions, Answers: answers}, true
}

func parseDoc(fields map[string]json.RawMessage) (*DocShape, bool) {
	tags, ok := parseMetatags(fields)
	if !ok {
		return nil, false
	}
	title, description := metaTitleDescription(tags)
	if title == "" || description == "" {
		return nil, false
	}
	return &DocShape{Title: title, Description: description}, true
}

func parseMetatags(fields map[string]json.RawMessage) ([]map[string]string, bool) {
	tagsRaw, ok := fields["metatags"]
	if !ok {
		return nil, false
	}
	var tags []map[string]string
	if err := json.Unmarshal(tagsRaw, &tags); err != nil || len(tags) == 0 {
		return nil, false
	}
	return tags, true
}

// metaTitleDescription extracts title and description from the first
// metatags entry, preferring the OpenGraph keys.
func metaTitleDescription(tags []map[string]string) (title, description string) {
	tag := tags[0]
	title = tag["og:title"]
	if title == "" {
		title = tag["title"]
	}
	description = tag["og:description"]
	if description == "" {
		description = tag["description"]
	}
	return title, description
}
