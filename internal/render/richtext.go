package render

import (
	"strings"

	"blogsync/internal/notion"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// RichTextHTML renders formatted spans into one HTML fragment. Text is
// escaped first, then style tags nest in a fixed order (code innermost, then
// strong, em, del, u) so identical input always produces identical markup
// regardless of how the flags were set. A span with a link target is
// wrapped whole in an anchor that opens a new tab without referrer/opener
// leakage. Empty input yields an empty string.
func RichTextHTML(spans []notion.RichText) string {
	var b strings.Builder
	for _, span := range spans {
		content := escapeHTML(span.PlainText)
		a := span.Annotations
		if a.Code {
			content = "<code>" + content + "</code>"
		}
		if a.Bold {
			content = "<strong>" + content + "</strong>"
		}
		if a.Italic {
			content = "<em>" + content + "</em>"
		}
		if a.Strikethrough {
			content = "<del>" + content + "</del>"
		}
		if a.Underline {
			content = "<u>" + content + "</u>"
		}
		if span.Href != "" {
			content = `<a href="` + escapeHTML(span.Href) + `" target="_blank" rel="noopener noreferrer">` + content + `</a>`
		}
		b.WriteString(content)
	}
	return b.String()
}
