package builtins

import (
	"strconv"
	"strings"

	"github.com/tesseradata/tessera/pkg/transform"
)

// boolean renders truthy values with configurable labels. Options, all
// optional: trueLabel/falseLabel (default Yes/No), icons (map with "true"
// and "false" keys, prepended to the label), colors (same keys, wraps the
// output in a colored span). Values that cannot be read as a boolean render
// as their default representation.
func boolean(value interface{}, opts transform.Options) string {
	b, ok := truthiness(value)
	if !ok {
		return transform.DefaultString(value)
	}

	key, label := "false", opts.String("falseLabel", "No")
	if b {
		key, label = "true", opts.String("trueLabel", "Yes")
	}
	if icon := opts.StringMap("icons")[key]; icon != "" {
		label = strings.TrimSpace(icon + " " + label)
	}
	if color := opts.StringMap("colors")[key]; color != "" {
		return span("", "color:"+color, label)
	}
	return label
}

func truthiness(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "y":
			return true, true
		case "no", "n":
			return false, true
		}
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b, true
		}
		return false, false
	default:
		if f, ok := transform.ToFloat(v); ok {
			return f != 0, true
		}
		return false, false
	}
}
