package builtins

import (
	"strings"

	"github.com/tesseradata/tessera/pkg/transform"
)

// sequence renders biological sequence strings uppercased in a monospace
// span. Options, all optional: type (dna, rna or protein, tags the markup
// class for styling; default dna) and truncate (maximum length before an
// ellipsis).
func sequence(value interface{}, opts transform.Options) string {
	text := transform.DefaultString(value)
	if text == "" {
		return ""
	}

	seq := strings.ToUpper(text)
	if n, ok := opts.IntOK("truncate"); ok && n > 0 {
		if runes := []rune(seq); len(runes) > n {
			seq = string(runes[:n]) + "…"
		}
	}

	class := "seq"
	switch opts.String("type", "dna") {
	case "dna":
		class = "seq seq-dna"
	case "rna":
		class = "seq seq-rna"
	case "protein":
		class = "seq seq-protein"
	}
	return span(class, "", seq)
}
