package docs

import "regexp"

// Mirror pages embed double-curly-brace template macros. Cross-reference
// macros ({{domxref("X")}}, {{cssxref("X")}}, {{jsxref("X")}}) carry a
// single quoted argument naming the referenced symbol; that argument is
// kept as inline code. Every other macro is stripped entirely so template
// syntax never leaks into agent-consumed text.
var (
	crossRefPattern = regexp.MustCompile(`\{\{\s*(?:domxref|cssxref|jsxref)\(\s*["']([^"']+)["']\s*\)\s*\}\}`)
	macroPattern    = regexp.MustCompile(`\{\{[^{}]*\}\}`)
)

// RenderMacros rewrites cross-reference macros to inline code and removes
// all remaining macro invocations.
func RenderMacros(content string) string {
	content = crossRefPattern.ReplaceAllString(content, "`$1`")
	return macroPattern.ReplaceAllString(content, "")
}
