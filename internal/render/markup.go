package render

import (
	"html"
	"strings"
)

// StripMarkup flattens transformer output to plain text. Transformers emit
// a small HTML vocabulary (anchors, styled spans) for web consumers; for
// terminals and flat-file export only the text content survives. Entities
// escaped by the transformers are decoded back.
func StripMarkup(s string) string {
	if strings.ContainsRune(s, '<') {
		var b strings.Builder
		b.Grow(len(s))
		inTag := false
		for _, r := range s {
			switch {
			case inTag:
				if r == '>' {
					inTag = false
				}
			case r == '<':
				inTag = true
			default:
				b.WriteRune(r)
			}
		}
		s = b.String()
	}
	return html.UnescapeString(s)
}
