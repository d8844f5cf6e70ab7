package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseradata/tessera/pkg/errors"
)

const jsonDoc = `{
  "id": "gene",
  "name": "Gene",
  "version": "2.1.0",
  "defaults": {"pageSize": 50},
  "sharedCategories": [
    {"id": "core", "name": "Core", "defaultVisible": true, "order": 1}
  ],
  "tables": {
    "variants": {
      "displayName": "Variants",
      "columns": [
        {
          "column": "pValue",
          "categories": ["core"],
          "transform": {"type": "number", "options": {"decimals": 2}}
        }
      ]
    }
  }
}`

const yamlDoc = `
id: gene
defaults:
  pageSize: 50
sharedCategories:
  - id: core
    name: Core
    defaultVisible: true
tables:
  variants:
    displayName: Variants
    columns:
      - column: pValue
        categories: [core]
        transform:
          - type: number
            options:
              decimals: 2
          - type: heatmap
            options:
              min: 0
              max: 1
`

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gene.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonDoc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gene", cfg.ID)
	assert.Equal(t, 50, cfg.Defaults.PageSize)
	require.Contains(t, cfg.Tables, "variants")

	col := cfg.Tables["variants"].Columns[0]
	require.Len(t, col.Transform, 1)
	assert.Equal(t, "number", col.Transform[0].Type)

	decimals, ok := col.Transform[0].Options["decimals"].(json.Number)
	require.True(t, ok, "numeric options must decode as json.Number, got %T",
		col.Transform[0].Options["decimals"])
	assert.Equal(t, "2", decimals.String())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	col := cfg.Tables["variants"].Columns[0]
	require.Len(t, col.Transform, 2)
	assert.Equal(t, "number", col.Transform[0].Type)
	assert.Equal(t, "heatmap", col.Transform[1].Type)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIO))
}

func TestDecode_EnvSubstitution(t *testing.T) {
	t.Setenv("TESSERA_TEST_DATATYPE", "gene")

	cfg, err := Decode([]byte(`{
	  "id": "${TESSERA_TEST_DATATYPE}",
	  "tables": {"t": {"displayName": "T", "columns": [{"column": "a"}]}}
	}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "gene", cfg.ID)
}

func TestDecode_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
	}{
		{"malformed json", `{"id": `, FormatJSON},
		{"malformed yaml", "id: [unclosed", FormatYAML},
		{"missing id", `{"tables": {"t": {"displayName": "T", "columns": []}}}`, FormatJSON},
		{"no tables", `{"id": "gene"}`, FormatJSON},
		{"column without key", `{"id": "gene", "tables": {"t": {"displayName": "T", "columns": [{"displayName": "X"}]}}}`, FormatJSON},
		{"category without id", `{"id": "gene", "sharedCategories": [{"name": "Core"}], "tables": {"t": {"displayName": "T", "columns": [{"column": "a"}]}}}`, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), tt.format)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation), "got %v", err)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("conf/gene.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("gene.YML"))
	assert.Equal(t, FormatJSON, DetectFormat("gene.json"))
	assert.Equal(t, FormatJSON, DetectFormat("gene"))
}
