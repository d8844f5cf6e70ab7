package builtins

import (
	"github.com/tesseradata/tessera/pkg/transform"
)

// badge wraps the value in a colored chip. The colors option maps cell
// values to hex colors; unmapped values use the color option, then a neutral
// default.
func badge(value interface{}, opts transform.Options) string {
	text := transform.DefaultString(value)
	if text == "" {
		return ""
	}

	color := opts.String("color", defaultBadgeColor)
	if mapped, ok := opts.StringMap("colors")[text]; ok && mapped != "" {
		color = mapped
	}
	return span("badge", "background-color:"+color, text)
}
