package utils

import (
	"html/template"
	"regexp"
	"strings"
)

// LineBreak is the marker stored in place of newlines in note content.
const LineBreak = "<br />"

var newlinePattern = regexp.MustCompile(`\r?\n`)

// NormalizeContent replaces every \n or \r\n with LineBreak.
func NormalizeContent(content string) string {
	return newlinePattern.ReplaceAllString(content, LineBreak)
}

// DenormalizeContent turns stored content back into textarea text.
func DenormalizeContent(content string) string {
	return strings.ReplaceAll(content, LineBreak, "\n")
}

// ContentHTML renders stored content for display. Everything is escaped
// except the LineBreak markers.
func ContentHTML(content string) template.HTML {
	parts := strings.Split(content, LineBreak)
	for i, p := range parts {
		parts[i] = template.HTMLEscapeString(p)
	}
	return template.HTML(strings.Join(parts, LineBreak))
}
