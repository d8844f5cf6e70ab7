package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tesseradata/tessera/pkg/json"
)

func TestTransformChain_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single object", `{"type": "badge"}`, []string{"badge"}},
		{"array", `[{"type": "number"}, {"type": "heatmap"}]`, []string{"number", "heatmap"}},
		{"null", `null`, nil},
		{"empty array", `[]`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var chain TransformChain
			require.NoError(t, json.Unmarshal([]byte(tt.in), &chain))

			var types []string
			if chain != nil {
				types = make([]string, 0, len(chain))
				for _, spec := range chain {
					types = append(types, spec.Type)
				}
			}
			assert.Equal(t, tt.want, types)
		})
	}
}

func TestTransformChain_UnmarshalJSON_Invalid(t *testing.T) {
	var chain TransformChain
	assert.Error(t, json.Unmarshal([]byte(`"badge"`), &chain))
}

func TestTransformChain_MarshalJSON_PreservesShape(t *testing.T) {
	single := TransformChain{{Type: "badge"}}
	data, err := json.Marshal(single)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "badge"}`, string(data))

	chain := TransformChain{{Type: "number"}, {Type: "heatmap"}}
	data, err = json.Marshal(chain)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type": "number"}, {"type": "heatmap"}]`, string(data))
}

func TestTransformChain_UnmarshalYAML(t *testing.T) {
	var col ColumnDefinition
	require.NoError(t, yaml.Unmarshal([]byte(`
column: score
transform:
  type: number
  options:
    decimals: 2
`), &col))
	require.Len(t, col.Transform, 1)
	assert.Equal(t, "number", col.Transform[0].Type)

	var col2 ColumnDefinition
	require.NoError(t, yaml.Unmarshal([]byte(`
column: score
transform:
  - type: number
  - type: heatmap
`), &col2))
	require.Len(t, col2.Transform, 2)

	var col3 ColumnDefinition
	err := yaml.Unmarshal([]byte("column: score\ntransform: number\n"), &col3)
	assert.Error(t, err)
}

func TestSettings_Merge(t *testing.T) {
	base := Settings{
		PageSize:    25,
		Density:     "comfortable",
		Placeholder: "—",
		Locale:      "en",
		Sortable:    Bool(true),
	}

	merged := base.Merge(Settings{PageSize: 100, Filterable: Bool(false)})

	assert.Equal(t, 100, merged.PageSize)
	assert.Equal(t, "comfortable", merged.Density, "unset fields must not override")
	assert.Equal(t, "en", merged.Locale)
	require.NotNil(t, merged.Sortable)
	assert.True(t, *merged.Sortable)
	require.NotNil(t, merged.Filterable)
	assert.False(t, *merged.Filterable)
}

func TestSettings_MergeFalseOverridesTrue(t *testing.T) {
	merged := Settings{Sortable: Bool(true)}.Merge(Settings{Sortable: Bool(false)})
	require.NotNil(t, merged.Sortable)
	assert.False(t, *merged.Sortable, "an explicit false is a real override, not an unset field")
}

func TestMergeSettings_FoldOrder(t *testing.T) {
	folded := MergeSettings(
		Settings{PageSize: 25, Density: "comfortable"},
		Settings{PageSize: 50},
		Settings{PageSize: 100, Locale: "de"},
	)

	assert.Equal(t, 100, folded.PageSize)
	assert.Equal(t, "comfortable", folded.Density)
	assert.Equal(t, "de", folded.Locale)
}

func TestDataTypeConfig_TableNames(t *testing.T) {
	dtc := &DataTypeConfig{Tables: map[string]TableSchema{
		"variants": {}, "expression": {}, "annotations": {},
	}}
	assert.Equal(t, []string{"annotations", "expression", "variants"}, dtc.TableNames())
}
