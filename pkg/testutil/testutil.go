// Package testutil provides shared fixtures and helpers for package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tesseradata/tessera/pkg/config"
)

// WriteFile writes content to name under the test's temp directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// SampleResolved returns a resolved table with the canonical category
// layout used across coordinator and renderer tests: a visible "core"
// category, a hidden "seq" category, one column in each, and one column
// belonging to no category.
func SampleResolved() *config.ResolvedTableConfig {
	return &config.ResolvedTableConfig{
		Name: "variants",
		Categories: []config.CategoryDefinition{
			{ID: "core", Name: "Core", DefaultVisible: true},
			{ID: "seq", Name: "Sequence", DefaultVisible: false},
		},
		Columns: []config.ColumnDefinition{
			{Column: "id", Categories: []string{"core"}},
			{Column: "sequence", Categories: []string{"seq"}},
			{Column: "notes"},
		},
	}
}
