// Package tessera provides a declarative configuration resolution and
// rendering engine for tabular data: JSON or YAML documents describe
// tables, columns, categories, and cell transformers, and the engine
// turns them into resolved views ready to render.
//
// # Architecture
//
// Tessera is built around three cooperating layers:
//
// 1. Configuration Resolution: a four-level settings hierarchy
// (application defaults, data-type defaults, table settings, column
// settings) folded field by field into an immutable per-table result.
//
// 2. Visibility Coordination: category switches and per-column toggles
// over the resolved column set, with asymmetric semantics by contract.
// Category toggles regenerate the visible set from category flags and
// discard earlier per-column overrides; column toggles patch the set in
// place.
//
// 3. Cell Transformation: an open registry of chainable transformers
// (links, localized numbers, badges, heatmaps, booleans, sequences,
// ontology terms) applied per cell, degrading to plain text whenever a
// chain stage or its options cannot be honored.
//
// # Quick Start
//
// Resolve a table and render rows:
//
//	import (
//	    "os"
//
//	    "github.com/tesseradata/tessera/internal/render"
//	    "github.com/tesseradata/tessera/pkg/config"
//	    "github.com/tesseradata/tessera/pkg/dataset"
//	    "github.com/tesseradata/tessera/pkg/transform"
//	    "github.com/tesseradata/tessera/pkg/visibility"
//
//	    _ "github.com/tesseradata/tessera/pkg/transform/builtins"
//	)
//
//	dtc, _ := config.Load("gene.yaml")
//	resolved, _ := config.Resolve(config.Settings{}, dtc, "variants")
//
//	coord := visibility.New(visibility.Config{})
//	coord.Initialize(resolved)
//
//	rows, _ := dataset.LoadFile("rows.csv")
//	view := render.View{Resolved: resolved, Visible: coord.VisibleColumns()}
//	_ = render.New(transform.Default).Grid(os.Stdout, view, rows, nil)
//
// # Key Packages
//
//	pkg/config     - Document loading, settings hierarchy, table resolution
//	pkg/visibility - Category and column visibility coordination
//	pkg/transform  - Transformer registry, chain pipeline, built-ins
//	pkg/dataset    - CSV/TSV/JSON row loading
//	pkg/state      - Shared application state with change subscription
//	pkg/errors     - Structured error handling
//	pkg/logger     - Structured logging
//	pkg/metrics    - Prometheus instrumentation
//
// # Configuration
//
// Data-type documents may be JSON or YAML and support ${VAR_NAME}
// environment substitution. Application-level settings come from
// tessera.yaml and TESSERA_* environment variables.
package tessera
