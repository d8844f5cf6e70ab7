package config

import (
	"sort"
	"strings"

	"github.com/tesseradata/tessera/pkg/errors"
	"github.com/tesseradata/tessera/pkg/metrics"
)

// Resolve merges the configuration hierarchy for one table into a
// ResolvedTableConfig. Layers fold in order, later overriding earlier field
// by field: application defaults, data-type defaults, table settings, then
// column settings. Column category references are taken verbatim and
// validated against the data type's shared categories.
//
// Resolve performs no I/O and never mutates its inputs. Callers seed
// visibility state from the result. On any configuration error it returns
// before producing a partial result.
func Resolve(app Settings, dtc *DataTypeConfig, tableName string) (*ResolvedTableConfig, error) {
	timer := metrics.NewTimer()
	resolved, err := resolve(app, dtc, tableName)
	metrics.ObserveResolution(tableName, err == nil, timer.Stop())
	return resolved, err
}

func resolve(app Settings, dtc *DataTypeConfig, tableName string) (*ResolvedTableConfig, error) {
	if dtc == nil {
		return nil, errors.NewConfiguration(errors.CodeUnknownTable,
			"table %q requested with no data-type configuration loaded", tableName)
	}
	table, ok := dtc.Tables[tableName]
	if !ok {
		return nil, errors.NewConfiguration(errors.CodeUnknownTable,
			"table %q not defined in data type %q", tableName, dtc.ID).
			WithDetail("available", strings.Join(dtc.TableNames(), ", "))
	}

	seen := make(map[string]struct{}, len(table.Columns))
	for _, col := range table.Columns {
		if _, dup := seen[col.Column]; dup {
			return nil, errors.NewConfiguration(errors.CodeDuplicateColumn,
				"duplicate column %q in table %q", col.Column, tableName)
		}
		seen[col.Column] = struct{}{}
	}

	// Shared categories keep document order here; duplicate ids keep the
	// first definition. Presentation order is applied after validation.
	categories := make([]CategoryDefinition, 0, len(dtc.SharedCategories))
	index := make(map[string]struct{}, len(dtc.SharedCategories))
	for _, cat := range dtc.SharedCategories {
		if _, dup := index[cat.ID]; dup {
			continue
		}
		index[cat.ID] = struct{}{}
		categories = append(categories, cat.clone())
	}

	for _, col := range table.Columns {
		for _, id := range col.Categories {
			if _, ok := index[id]; !ok {
				return nil, errors.NewConfiguration(errors.CodeDanglingCategoryReference,
					"column %q references unknown category %q", col.Column, id).
					WithDetail("table", tableName)
			}
		}
	}

	settings := MergeSettings(app, dtc.Defaults, table.Defaults)

	columns := make([]ColumnDefinition, 0, len(table.Columns))
	for _, col := range table.Columns {
		c := col.clone()
		if c.DisplayName == "" {
			c.DisplayName = c.Column
		}
		if c.Sortable == nil {
			c.Sortable = copyBool(settings.Sortable)
		}
		if c.Filterable == nil {
			c.Filterable = copyBool(settings.Filterable)
		}
		columns = append(columns, c)
	}

	sortCategories(categories)

	return &ResolvedTableConfig{
		Name:        tableName,
		DisplayName: table.DisplayName,
		Description: table.Description,
		Settings:    settings,
		Columns:     columns,
		Categories:  categories,
	}, nil
}

// sortCategories orders categories for presentation: explicit orders
// ascending first, categories without an order after them, ties stable.
func sortCategories(categories []CategoryDefinition) {
	sort.SliceStable(categories, func(i, j int) bool {
		oi, oj := categories[i].Order, categories[j].Order
		switch {
		case oi != nil && oj != nil:
			return *oi < *oj
		case oi != nil:
			return true
		default:
			return false
		}
	})
}
