package builtins

import (
	"strings"

	"github.com/tesseradata/tessera/pkg/transform"
)

// ontology renders ontology term identifiers (GO:0008150 and friends). The
// prefix option completes bare accessions into prefixed terms; the style
// option picks the representation: link (default) substitutes the term into
// urlTemplate, badge renders a colored chip, text passes the term through.
// A link style without a urlTemplate degrades to the plain term.
func ontology(value interface{}, opts transform.Options) string {
	text := transform.DefaultString(value)
	if text == "" {
		return transform.DefaultPlaceholder
	}

	term := text
	if prefix := opts.String("prefix", ""); prefix != "" && !strings.Contains(term, ":") {
		term = prefix + ":" + term
	}

	switch opts.String("style", "link") {
	case "badge":
		return span("badge badge-ontology", "background-color:"+opts.String("color", defaultBadgeColor), term)
	case "text":
		return term
	default:
		tmpl := opts.String("urlTemplate", "")
		if tmpl == "" {
			return term
		}
		href := strings.ReplaceAll(tmpl, "{value}", encodeValue(term))
		return anchor("ontology", href, term)
	}
}
