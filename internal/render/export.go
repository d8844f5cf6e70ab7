package render

import (
	"encoding/csv"
	"io"

	"github.com/tesseradata/tessera/pkg/dataset"
	"github.com/tesseradata/tessera/pkg/errors"
)

// ExportFormat selects the flat-file encoding for Export.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportTSV ExportFormat = "tsv"
)

// Export writes the view as delimiter-separated values: a header of display
// names followed by one record per row. Cells carry the same transformed,
// markup-stripped text the grid shows. Unlike Grid, Export never truncates,
// pads, or caps rows.
func (r *Renderer) Export(w io.Writer, view View, ds *dataset.Dataset, format ExportFormat) error {
	cols := view.Columns()
	if len(cols) == 0 {
		return errors.New(errors.ErrorTypeValidation, "no visible columns to export")
	}

	cw := csv.NewWriter(w)
	if format == ExportTSV {
		cw.Comma = '\t'
	}

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = headerTitle(col)
	}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to write export header")
	}

	for _, row := range r.formatRows(cols, ds, 0) {
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, errors.ErrorTypeIO, "failed to write export record")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeIO, "failed to flush export")
	}
	return nil
}
