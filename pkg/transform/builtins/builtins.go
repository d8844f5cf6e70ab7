// Package builtins provides the built-in cell transformers: link, number,
// badge, heatmap, boolean, sequence and ontology. Importing the package
// registers them into the default registry:
//
//	import _ "github.com/tesseradata/tessera/pkg/transform/builtins"
//
// Built-ins emit a small HTML vocabulary (anchors and styled spans). Web
// consumers use it as is; terminal rendering and exports strip it.
//
// Every built-in degrades instead of failing: non-numeric input to number or
// heatmap, unparseable input to boolean, and missing required options all
// render the value's default representation, because a single misconfigured
// cell must not abort row rendering.
package builtins

import (
	"html"
	"net/url"
	"strings"

	"github.com/tesseradata/tessera/pkg/transform"
)

func init() {
	transform.Register("link", link)
	transform.Register("number", number)
	transform.Register("badge", badge)
	transform.Register("heatmap", heatmap)
	transform.Register("boolean", boolean)
	transform.Register("sequence", sequence)
	transform.Register("ontology", ontology)
}

const defaultBadgeColor = "#9ca3af"

func escape(s string) string {
	return html.EscapeString(s)
}

// encodeValue escapes a value for embedding in a URL, in any position.
func encodeValue(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func anchor(class, href, text string) string {
	var b strings.Builder
	b.WriteString("<a")
	if class != "" {
		b.WriteString(` class="` + class + `"`)
	}
	b.WriteString(` href="` + escape(href) + `">`)
	b.WriteString(escape(text))
	b.WriteString("</a>")
	return b.String()
}

func span(class, style, text string) string {
	var b strings.Builder
	b.WriteString("<span")
	if class != "" {
		b.WriteString(` class="` + class + `"`)
	}
	if style != "" {
		b.WriteString(` style="` + style + `"`)
	}
	b.WriteString(">")
	b.WriteString(escape(text))
	b.WriteString("</span>")
	return b.String()
}
