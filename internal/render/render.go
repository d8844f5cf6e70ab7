// Package render turns a resolved table configuration, a visibility
// selection, and loaded rows into terminal or flat-file output.
//
// # Overview
//
// Rendering walks the resolved column order, keeps only visible columns,
// and pushes every raw cell through the transformer pipeline. The markup
// the transformers emit is stripped back to text, padded to display width,
// and aligned per column. The same formatted values feed the CSV/TSV
// exporter, so a rendered grid and an exported file always agree on
// content.
//
// # Usage
//
//	r := render.New(transform.Default)
//	view := render.View{Resolved: resolved, Visible: coord.VisibleColumns()}
//	err := r.Grid(os.Stdout, view, rows, nil)
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/tesseradata/tessera/pkg/config"
	"github.com/tesseradata/tessera/pkg/dataset"
	"github.com/tesseradata/tessera/pkg/logger"
	"github.com/tesseradata/tessera/pkg/transform"
)

// View selects what to render: the resolved table plus the visible column
// set. A nil Visible map shows every resolved column.
type View struct {
	Resolved *config.ResolvedTableConfig
	Visible  map[string]bool
}

// Columns returns the resolved column order filtered by visibility.
func (v View) Columns() []config.ColumnDefinition {
	if v.Resolved == nil {
		return nil
	}
	if v.Visible == nil {
		return v.Resolved.Columns
	}
	cols := make([]config.ColumnDefinition, 0, len(v.Resolved.Columns))
	for _, col := range v.Resolved.Columns {
		if v.Visible[col.Column] {
			cols = append(cols, col)
		}
	}
	return cols
}

// GridConfig configures terminal grid output.
type GridConfig struct {
	// MaxRows caps the number of data rows printed. Zero means all rows.
	// A truncation footer reports how many were left out.
	MaxRows int
	// Density controls column spacing: "compact" uses a single space
	// between columns, anything else two.
	Density string
	// MinColumnWidth and MaxColumnWidth clamp natural column widths.
	// Explicit config widths bypass the clamp.
	MinColumnWidth int
	MaxColumnWidth int
}

// DefaultGridConfig returns the grid defaults.
func DefaultGridConfig() *GridConfig {
	return &GridConfig{
		MinColumnWidth: 4,
		MaxColumnWidth: 60,
	}
}

// Renderer formats rows through a transformer registry.
type Renderer struct {
	registry *transform.Registry
	logger   *zap.Logger
}

// New creates a Renderer backed by the given registry. A nil registry
// falls back to the shared default.
func New(registry *transform.Registry) *Renderer {
	if registry == nil {
		registry = transform.Default
	}
	return &Renderer{
		registry: registry,
		logger:   logger.Get().With(zap.String("component", "renderer")),
	}
}

// Grid writes rows as an aligned text table: a header of display names,
// one line per row, columns padded to display width.
func (r *Renderer) Grid(w io.Writer, view View, ds *dataset.Dataset, cfg *GridConfig) error {
	if cfg == nil {
		cfg = DefaultGridConfig()
	}
	if cfg.MinColumnWidth <= 0 {
		cfg.MinColumnWidth = 4
	}
	if cfg.MaxColumnWidth <= 0 {
		cfg.MaxColumnWidth = 60
	}

	cols := view.Columns()
	if len(cols) == 0 {
		_, err := fmt.Fprintln(w, "(no visible columns)")
		return err
	}

	rows := r.formatRows(cols, ds, cfg.MaxRows)
	widths := columnWidths(cols, rows, cfg)

	sep := "  "
	if cfg.Density == config.DensityCompact {
		sep = " "
	}

	r.logger.Debug("rendering grid",
		zap.Int("columns", len(cols)),
		zap.Int("rows", len(rows)))

	line := make([]string, len(cols))
	for i, col := range cols {
		line[i] = pad(truncate(headerTitle(col), widths[i]), widths[i], col.Align)
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(line, sep), " ")); err != nil {
		return err
	}

	for _, row := range rows {
		for i, col := range cols {
			line[i] = pad(truncate(row[i], widths[i]), widths[i], col.Align)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(line, sep), " ")); err != nil {
			return err
		}
	}

	if cfg.MaxRows > 0 && ds.Len() > cfg.MaxRows {
		if _, err := fmt.Fprintf(w, "… (%d more rows)\n", ds.Len()-cfg.MaxRows); err != nil {
			return err
		}
	}
	return nil
}

// formatRows runs every visible cell through the transformer pipeline and
// strips the markup, producing one string slice per row in column order.
// Missing keys surface as nil raw values, which the pipeline renders as
// the placeholder.
func (r *Renderer) formatRows(cols []config.ColumnDefinition, ds *dataset.Dataset, maxRows int) [][]string {
	if ds == nil {
		return nil
	}
	n := len(ds.Rows)
	if maxRows > 0 && n > maxRows {
		n = maxRows
	}

	rows := make([][]string, n)
	for ri := 0; ri < n; ri++ {
		cells := make([]string, len(cols))
		for ci := range cols {
			raw := ds.Rows[ri][cols[ci].Column]
			cells[ci] = StripMarkup(r.registry.Apply(&cols[ci], raw))
		}
		rows[ri] = cells
	}
	return rows
}

// columnWidths picks a display width per column: an explicit config width
// wins, otherwise the widest of header and cells clamped to the configured
// bounds.
func columnWidths(cols []config.ColumnDefinition, rows [][]string, cfg *GridConfig) []int {
	widths := make([]int, len(cols))
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		max := runewidth.StringWidth(headerTitle(col))
		for _, row := range rows {
			if w := runewidth.StringWidth(row[i]); w > max {
				max = w
			}
		}
		widths[i] = clamp(max, cfg.MinColumnWidth, cfg.MaxColumnWidth)
	}
	return widths
}

func headerTitle(col config.ColumnDefinition) string {
	if col.DisplayName != "" {
		return col.DisplayName
	}
	return col.Column
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return runewidth.Truncate(s, width, "…")
}

func pad(s string, width int, align string) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case config.AlignRight:
		return strings.Repeat(" ", gap) + s
	case config.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
