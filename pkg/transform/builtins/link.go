package builtins

import (
	"strings"

	"github.com/tesseradata/tessera/pkg/transform"
)

// link renders an anchor with the cell value substituted into the
// urlTemplate option's {value} marker. An empty value short-circuits to the
// placeholder without emitting a link; a missing urlTemplate degrades to the
// plain value.
func link(value interface{}, opts transform.Options) string {
	text := transform.DefaultString(value)
	if text == "" {
		return transform.DefaultPlaceholder
	}

	tmpl := opts.String("urlTemplate", "")
	if tmpl == "" {
		return text
	}

	href := strings.ReplaceAll(tmpl, "{value}", encodeValue(text))
	return anchor("", href, text)
}
