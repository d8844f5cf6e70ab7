// Package transform maps transformer type names to pure cell-formatting
// functions and evaluates column transform chains.
//
// # Overview
//
// A transformer is a Func taking a raw cell value and the options of one
// TransformerSpec, returning the display string. The Registry holds the
// name-to-function mapping; the last registration for a name wins, so
// plugins can override built-ins. Apply evaluates a column's transform
// field: a single spec, or a chain applied left to right where each stage's
// string output feeds the next stage's input and only the first stage sees
// the raw value's native type.
//
// Lookup misses are not errors. An unknown transformer type degrades to the
// value's default string representation, per stage in a chain, so a missing
// plugin never breaks row rendering.
//
// # Usage
//
//	transform.Register("upper", func(v interface{}, _ transform.Options) string {
//		return strings.ToUpper(transform.DefaultString(v))
//	})
//
//	col, _ := resolved.Column("symbol")
//	cell := transform.Apply(&col, row["symbol"])
//
// Built-in transformers live in the builtins subpackage and register
// themselves on import:
//
//	import _ "github.com/tesseradata/tessera/pkg/transform/builtins"
package transform
