package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseradata/tessera/pkg/errors"
)

func testDataType() *DataTypeConfig {
	return &DataTypeConfig{
		ID:       "gene",
		Name:     "Gene",
		Defaults: Settings{PageSize: 50, Density: "compact", Sortable: Bool(true)},
		SharedCategories: []CategoryDefinition{
			{ID: "core", Name: "Core", DefaultVisible: true, Order: Int(1)},
			{ID: "seq", Name: "Sequence", DefaultVisible: false, Order: Int(2)},
		},
		Tables: map[string]TableSchema{
			"variants": {
				DisplayName: "Variants",
				Description: "Known variants",
				Defaults:    Settings{PageSize: 100},
				Columns: []ColumnDefinition{
					{Column: "id", DisplayName: "ID", Categories: []string{"core"}},
					{Column: "sequence", Categories: []string{"seq"}},
					{Column: "notes"},
				},
			},
		},
	}
}

func TestResolve_MergeOrder(t *testing.T) {
	app := Settings{PageSize: 25, Density: "comfortable", Locale: "en"}

	resolved, err := Resolve(app, testDataType(), "variants")
	require.NoError(t, err)

	// Table layer wins over data-type and application layers.
	assert.Equal(t, 100, resolved.Settings.PageSize)
	// Data-type layer wins over the application layer.
	assert.Equal(t, "compact", resolved.Settings.Density)
	// Application layer survives where nothing overrides it.
	assert.Equal(t, "en", resolved.Settings.Locale)
}

func TestResolve_ColumnLayerWins(t *testing.T) {
	dtc := testDataType()
	table := dtc.Tables["variants"]
	table.Columns[0].Sortable = Bool(false)
	dtc.Tables["variants"] = table

	resolved, err := Resolve(Settings{}, dtc, "variants")
	require.NoError(t, err)

	id, ok := resolved.Column("id")
	require.True(t, ok)
	require.NotNil(t, id.Sortable)
	assert.False(t, *id.Sortable, "explicit column setting must beat the folded default")

	seq, ok := resolved.Column("sequence")
	require.True(t, ok)
	require.NotNil(t, seq.Sortable)
	assert.True(t, *seq.Sortable, "unset column setting inherits the folded default")
}

func TestResolve_UnknownTable(t *testing.T) {
	_, err := Resolve(Settings{}, testDataType(), "proteins")
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err, errors.CodeUnknownTable))
	assert.Contains(t, err.Error(), `"proteins"`)
}

func TestResolve_NilDataType(t *testing.T) {
	_, err := Resolve(Settings{}, nil, "variants")
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err, errors.CodeUnknownTable))
}

func TestResolve_DanglingCategoryReference(t *testing.T) {
	dtc := testDataType()
	table := dtc.Tables["variants"]
	table.Columns = append(table.Columns, ColumnDefinition{
		Column:     "clinical",
		Categories: []string{"clinical_evidence"},
	})
	dtc.Tables["variants"] = table

	resolved, err := Resolve(Settings{}, dtc, "variants")
	require.Error(t, err)
	assert.Nil(t, resolved, "no partial result on configuration errors")
	assert.True(t, errors.IsConfiguration(err, errors.CodeDanglingCategoryReference))
	assert.Contains(t, err.Error(), `"clinical"`)
	assert.Contains(t, err.Error(), `"clinical_evidence"`)
}

func TestResolve_DuplicateColumn(t *testing.T) {
	dtc := testDataType()
	table := dtc.Tables["variants"]
	table.Columns = append(table.Columns, ColumnDefinition{Column: "id"})
	dtc.Tables["variants"] = table

	_, err := Resolve(Settings{}, dtc, "variants")
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err, errors.CodeDuplicateColumn))
}

func TestResolve_CategoryOrdering(t *testing.T) {
	dtc := testDataType()
	dtc.SharedCategories = []CategoryDefinition{
		{ID: "unordered_a", Name: "A", DefaultVisible: true},
		{ID: "late", Name: "Late", DefaultVisible: true, Order: Int(9)},
		{ID: "unordered_b", Name: "B", DefaultVisible: true},
		{ID: "early", Name: "Early", DefaultVisible: true, Order: Int(1)},
	}

	resolved, err := Resolve(Settings{}, dtc, "variants")
	require.NoError(t, err)

	var ids []string
	for _, cat := range resolved.Categories {
		ids = append(ids, cat.ID)
	}
	assert.Equal(t, []string{"early", "late", "unordered_a", "unordered_b"}, ids)
}

func TestResolve_DuplicateCategoryKeepsFirst(t *testing.T) {
	dtc := testDataType()
	dtc.SharedCategories = append(dtc.SharedCategories,
		CategoryDefinition{ID: "core", Name: "Core (shadowed)", DefaultVisible: false})

	resolved, err := Resolve(Settings{}, dtc, "variants")
	require.NoError(t, err)

	core, ok := resolved.Category("core")
	require.True(t, ok)
	assert.Equal(t, "Core", core.Name)
	assert.True(t, core.DefaultVisible)
	assert.Len(t, resolved.Categories, 2)
}

func TestResolve_FillsDisplayName(t *testing.T) {
	resolved, err := Resolve(Settings{}, testDataType(), "variants")
	require.NoError(t, err)

	seq, ok := resolved.Column("sequence")
	require.True(t, ok)
	assert.Equal(t, "sequence", seq.DisplayName)

	id, ok := resolved.Column("id")
	require.True(t, ok)
	assert.Equal(t, "ID", id.DisplayName)
}

func TestResolve_ResultIsDetached(t *testing.T) {
	dtc := testDataType()
	resolved, err := Resolve(Settings{}, dtc, "variants")
	require.NoError(t, err)

	resolved.Columns[0].Categories[0] = "mutated"
	resolved.Categories[0].DefaultVisible = !resolved.Categories[0].DefaultVisible

	again, err := Resolve(Settings{}, dtc, "variants")
	require.NoError(t, err)
	assert.Equal(t, []string{"core"}, again.Columns[0].Categories,
		"mutating one resolution must not leak into the source document")
}

func TestResolve_TransformOptionsDetached(t *testing.T) {
	dtc := testDataType()
	table := dtc.Tables["variants"]
	table.Columns[0].Transform = TransformChain{
		{Type: "heatmap", Options: map[string]interface{}{
			"min":    0,
			"max":    100,
			"colors": []interface{}{"#ffffff", "#ff0000"},
		}},
		{Type: "badge", Options: map[string]interface{}{
			"colors": map[string]interface{}{"pathogenic": "#dc2626"},
		}},
	}
	dtc.Tables["variants"] = table

	resolved, err := Resolve(Settings{}, dtc, "variants")
	require.NoError(t, err)

	// Mutate nested option values on the resolved copy.
	opts := resolved.Columns[0].Transform[0].Options
	opts["colors"].([]interface{})[0] = "#000000"
	resolved.Columns[0].Transform[1].Options["colors"].(map[string]interface{})["pathogenic"] = "#ffffff"

	again, err := Resolve(Settings{}, dtc, "variants")
	require.NoError(t, err)
	stops := again.Columns[0].Transform[0].Options["colors"].([]interface{})
	assert.Equal(t, "#ffffff", stops[0],
		"nested option slices must not alias the source document")
	badgeColors := again.Columns[0].Transform[1].Options["colors"].(map[string]interface{})
	assert.Equal(t, "#dc2626", badgeColors["pathogenic"],
		"nested option maps must not alias the source document")
}

func TestResolve_TableMetadata(t *testing.T) {
	resolved, err := Resolve(Settings{}, testDataType(), "variants")
	require.NoError(t, err)

	assert.Equal(t, "variants", resolved.Name)
	assert.Equal(t, "Variants", resolved.DisplayName)
	assert.Equal(t, "Known variants", resolved.Description)
	assert.Equal(t, []string{"id", "sequence", "notes"}, resolved.ColumnKeys())
}
