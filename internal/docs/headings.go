package docs

import (
	"regexp"
	"strings"
)

var (
	headingPattern    = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	frontMatterEnd    = regexp.MustCompile(`(?ms)\A---\n(.*?)\n---\n?`)
	frontMatterTitleP = regexp.MustCompile(`(?m)^title:\s*["']?(.+?)["']?\s*$`)
)

// ExtractHeadings returns every markdown heading in the page, in order.
// Headings get an indexing boost so section-title matches outrank body
// matches.
func ExtractHeadings(content string) []string {
	matches := headingPattern.FindAllStringSubmatch(content, -1)
	headings := make([]string, 0, len(matches))
	for _, m := range matches {
		h := strings.TrimSpace(m[1])
		if h != "" {
			headings = append(headings, h)
		}
	}
	return headings
}

// ExtractTitle returns the page title from the YAML front matter, falling
// back to the first markdown heading.
func ExtractTitle(content string) string {
	if fm := frontMatterEnd.FindStringSubmatch(content); fm != nil {
		if m := frontMatterTitleP.FindStringSubmatch(fm[1]); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	if m := headingPattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
