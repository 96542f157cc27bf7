package domain

// DocPage represents one page of the local documentation mirror.
// It is the primary data structure stored in the Bleve search index.
type DocPage struct {
	// ID is the mirror-relative directory of the page.
	// Format: "en-us/web/api/element/mouseover_event"
	ID string `json:"id"`

	// Slug is the URL path of the page on the source site, folded to the
	// mirror's lower-case form.
	// Format: "/en-us/docs/web/api/element/mouseover_event"
	Slug string `json:"slug"`

	// Title is the page title, taken from the front matter or the first
	// markdown heading.
	Title string `json:"title"`

	// Headings holds all markdown headings, indexed with a boost so that
	// section titles outrank body matches.
	Headings string `json:"headings"`

	// Content is the full page text used for indexing and snippets.
	Content string `json:"content"`
}

// Bleve field name constants for consistent field references in queries and mappings.
const (
	DocFieldID       = "id"
	DocFieldSlug     = "slug"
	DocFieldTitle    = "title"
	DocFieldHeadings = "headings"
	DocFieldContent  = "content"
)
