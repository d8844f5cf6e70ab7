// Package dataset loads tabular row data for rendering and export.
//
// Rows are schemaless maps keyed by column name. Two on-disk shapes are
// supported: CSV files with a header row, and JSON arrays of objects.
// CSV cells arrive as strings; JSON numbers are decoded as json.Number so
// transformers receive full precision rather than float64 approximations.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/tesseradata/tessera/pkg/errors"
	"github.com/tesseradata/tessera/pkg/json"
)

// Row is a single record keyed by column name. Values keep the type the
// decoder produced: string for CSV cells, json.Number / bool / nil for
// JSON fields.
type Row map[string]interface{}

// Dataset holds loaded rows together with the column order discovered in
// the source. Columns preserves CSV header order; for JSON it is the
// sorted union of keys across all rows.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// CSVConfig configures CSV decoding.
type CSVConfig struct {
	// Delimiter is the field separator. Defaults to ','.
	Delimiter rune
	// Comment lines starting with this rune are skipped. Zero disables
	// comment handling.
	Comment rune
	// MaxRows caps the number of data rows read. Zero means no limit.
	MaxRows int
}

// DefaultCSVConfig returns the decoding defaults.
func DefaultCSVConfig() *CSVConfig {
	return &CSVConfig{
		Delimiter: ',',
		Comment:   '#',
	}
}

// LoadFile reads rows from path, choosing the decoder by file extension:
// .json loads a JSON array, anything else is treated as CSV (.tsv switches
// the delimiter to tab). A trailing .gz is decompressed transparently, so
// rows.csv.gz and rows.json.gz work as expected.
func LoadFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to open dataset file").
			WithDetail("path", path)
	}
	defer file.Close() //nolint:errcheck // read-only handle

	var r io.Reader = file
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open gzip stream").
				WithDetail("path", path)
		}
		defer gz.Close() //nolint:errcheck // read-only stream
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	switch filepath.Ext(name) {
	case ".json":
		return ReadJSON(r)
	case ".tsv":
		cfg := DefaultCSVConfig()
		cfg.Delimiter = '\t'
		return ReadCSV(r, cfg)
	default:
		return ReadCSV(r, nil)
	}
}

// ReadCSV decodes header-mapped rows from r. The first record is the
// header; every later record becomes a Row keyed by header name. Short
// records leave trailing columns absent, long records gain positional
// column_N keys, matching the forgiving behavior expected of hand-edited
// files.
func ReadCSV(r io.Reader, cfg *CSVConfig) (*Dataset, error) {
	if cfg == nil {
		cfg = DefaultCSVConfig()
	}

	reader := csv.NewReader(r)
	reader.Comma = cfg.Delimiter
	if cfg.Delimiter == 0 {
		reader.Comma = ','
	}
	reader.Comment = cfg.Comment
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Dataset{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read CSV header")
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	ds := &Dataset{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read CSV record")
		}

		row := make(Row, len(columns))
		for i, value := range record {
			if i < len(columns) {
				row[columns[i]] = value
			} else {
				row[fmt.Sprintf("column_%d", i)] = value
			}
		}
		ds.Rows = append(ds.Rows, row)

		if cfg.MaxRows > 0 && len(ds.Rows) >= cfg.MaxRows {
			break
		}
	}
	return ds, nil
}

// ReadJSON decodes a JSON array of objects from r. Numbers are preserved
// as json.Number. Columns is the sorted union of keys across all rows so
// downstream consumers have a deterministic order to fall back on when no
// resolved config drives the layout.
func ReadJSON(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIO, "failed to read JSON dataset")
	}

	var raw []map[string]interface{}
	if err := json.UnmarshalNumber(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "dataset is not a JSON array of objects")
	}

	ds := &Dataset{Rows: make([]Row, 0, len(raw))}
	seen := make(map[string]bool)
	for _, obj := range raw {
		ds.Rows = append(ds.Rows, Row(obj))
		for key := range obj {
			if !seen[key] {
				seen[key] = true
				ds.Columns = append(ds.Columns, key)
			}
		}
	}
	sort.Strings(ds.Columns)
	return ds, nil
}
