// Package config loads data-type configuration documents and resolves them
// into per-table configurations.
//
// A document declares shared categories and per-table column lists. Four
// layers of settings fold into each resolved table, later layers overriding
// earlier ones field by field:
//
//	application defaults -> data-type defaults -> table settings -> column settings
//
// # Key Features
//
// - Resolve: a pure reduction from document plus table name to one immutable
// ResolvedTableConfig, with strict validation of category references and
// column keys
// - JSON and YAML documents, selected by extension, with ${VAR_NAME}
// environment substitution
// - Number-preserving decoding: transformer options keep json.Number
// - Source abstraction for fetching documents from disk or HTTP(S) with
// ETag/Last-Modified revalidation
// - Application-level defaults via tessera.yaml and TESSERA_* environment
// variables
//
// # Usage
//
//	app, _ := config.LoadApp()
//	dtc, err := config.Load("genes.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	resolved, err := config.Resolve(app.Settings, dtc, "variants")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, col := range resolved.Columns {
//		fmt.Println(col.Column, col.DisplayName)
//	}
//
// Resolution fails fast with a structured configuration error when the table
// is unknown, a column references a category id missing from the shared
// list, or a table defines the same column key twice. Callers seed
// visibility state from the resolved result only after Resolve succeeds.
package config
