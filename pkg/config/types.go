package config

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tesseradata/tessera/pkg/errors"
	"github.com/tesseradata/tessera/pkg/json"
)

// CategoryDefinition is a named, user-toggleable group of columns sharing a
// visibility switch. Categories are owned by the data-type configuration,
// immutable once loaded, and identified by ID, never by position.
type CategoryDefinition struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	Icon           string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color          string `json:"color,omitempty" yaml:"color,omitempty"`
	DefaultVisible bool   `json:"defaultVisible" yaml:"defaultVisible"`
	Order          *int   `json:"order,omitempty" yaml:"order,omitempty"`
}

// ColumnDefinition describes one column of a table: its key, display
// attributes, category assignments, and transform chain. Visible is
// tri-state: nil means unset, and initial visibility is then derived from
// the column's categories.
type ColumnDefinition struct {
	Column      string         `json:"column" yaml:"column"`
	DisplayName string         `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	DataType    string         `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Visible     *bool          `json:"visible,omitempty" yaml:"visible,omitempty"`
	Sortable    *bool          `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	Filterable  *bool          `json:"filterable,omitempty" yaml:"filterable,omitempty"`
	Width       int            `json:"width,omitempty" yaml:"width,omitempty"`
	Align       string         `json:"align,omitempty" yaml:"align,omitempty"`
	Categories  []string       `json:"categories,omitempty" yaml:"categories,omitempty"`
	Transform   TransformChain `json:"transform,omitempty" yaml:"transform,omitempty"`
}

// TransformerSpec selects a registered transformer by type name and carries
// its options. Option values keep their wire types; numeric options decode
// as json.Number.
type TransformerSpec struct {
	Type    string                 `json:"type" yaml:"type"`
	Options map[string]interface{} `json:"options,omitempty" yaml:"options,omitempty"`
}

// TransformChain is a column's transform field: a single spec or an ordered
// sequence of specs applied left to right. On the wire, a lone object and a
// one-element array are equivalent.
type TransformChain []TransformerSpec

// UnmarshalJSON accepts either a transformer spec object or an array of specs.
func (c *TransformChain) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}
	if trimmed[0] == '[' {
		var specs []TransformerSpec
		if err := json.UnmarshalNumber(data, &specs); err != nil {
			return err
		}
		*c = specs
		return nil
	}
	var single TransformerSpec
	if err := json.UnmarshalNumber(data, &single); err != nil {
		return err
	}
	*c = TransformChain{single}
	return nil
}

// MarshalJSON emits a lone spec as an object and longer chains as arrays,
// preserving the input shape for round-trips.
func (c TransformChain) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]TransformerSpec(c))
}

// UnmarshalYAML accepts either a transformer spec mapping or a sequence.
func (c *TransformChain) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var specs []TransformerSpec
		if err := value.Decode(&specs); err != nil {
			return err
		}
		*c = specs
		return nil
	case yaml.MappingNode:
		var single TransformerSpec
		if err := value.Decode(&single); err != nil {
			return err
		}
		*c = TransformChain{single}
		return nil
	default:
		return fmt.Errorf("line %d: transform must be a mapping or a sequence", value.Line)
	}
}

// Settings is the partial-configuration unit folded across the merge
// hierarchy. Zero values mean "unset at this layer": 0, "" and nil fields
// never override an earlier layer.
type Settings struct {
	PageSize    int    `json:"pageSize,omitempty" yaml:"pageSize,omitempty"`
	Density     string `json:"density,omitempty" yaml:"density,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Locale      string `json:"locale,omitempty" yaml:"locale,omitempty"`
	Sortable    *bool  `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	Filterable  *bool  `json:"filterable,omitempty" yaml:"filterable,omitempty"`
}

// Merge returns s with every field explicitly set in over replacing s's value.
func (s Settings) Merge(over Settings) Settings {
	if over.PageSize != 0 {
		s.PageSize = over.PageSize
	}
	if over.Density != "" {
		s.Density = over.Density
	}
	if over.Placeholder != "" {
		s.Placeholder = over.Placeholder
	}
	if over.Locale != "" {
		s.Locale = over.Locale
	}
	if over.Sortable != nil {
		s.Sortable = copyBool(over.Sortable)
	}
	if over.Filterable != nil {
		s.Filterable = copyBool(over.Filterable)
	}
	return s
}

// MergeSettings folds layers left to right, later layers overriding earlier
// ones field by field.
func MergeSettings(layers ...Settings) Settings {
	var out Settings
	for _, layer := range layers {
		out = out.Merge(layer)
	}
	return out
}

// TableSchema is the per-table slice of a data-type configuration: display
// metadata, table-level setting overrides, and the ordered column list.
type TableSchema struct {
	DisplayName string             `json:"displayName" yaml:"displayName"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Defaults    Settings           `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Columns     []ColumnDefinition `json:"columns" yaml:"columns"`
}

// DataTypeConfig is a loaded configuration document: shared category
// definitions plus the tables that reference them.
type DataTypeConfig struct {
	ID               string                 `json:"id" yaml:"id"`
	Name             string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Version          string                 `json:"version,omitempty" yaml:"version,omitempty"`
	Defaults         Settings               `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	SharedCategories []CategoryDefinition   `json:"sharedCategories,omitempty" yaml:"sharedCategories,omitempty"`
	Tables           map[string]TableSchema `json:"tables" yaml:"tables"`
}

// TableNames returns the configured table names in sorted order.
func (c *DataTypeConfig) TableNames() []string {
	names := make([]string, 0, len(c.Tables))
	for name := range c.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the basic document shape. Cross-reference checks (category
// references, duplicate columns) happen at resolution time.
func (c *DataTypeConfig) Validate() error {
	if c.ID == "" {
		return errors.New(errors.ErrorTypeValidation, "data-type configuration requires an id")
	}
	if len(c.Tables) == 0 {
		return errors.Newf(errors.ErrorTypeValidation, "data type %q defines no tables", c.ID)
	}
	for name, table := range c.Tables {
		for i, col := range table.Columns {
			if col.Column == "" {
				return errors.Newf(errors.ErrorTypeValidation,
					"table %q column %d has no column key", name, i)
			}
		}
	}
	for _, cat := range c.SharedCategories {
		if cat.ID == "" {
			return errors.Newf(errors.ErrorTypeValidation,
				"data type %q has a category without an id", c.ID)
		}
	}
	return nil
}

// ResolvedTableConfig is the merged configuration for one table. It is
// produced once per table activation, treated as read-only by every
// downstream consumer, and replaced wholesale on table switch.
type ResolvedTableConfig struct {
	Name        string
	DisplayName string
	Description string
	Settings    Settings
	Columns     []ColumnDefinition
	Categories  []CategoryDefinition
}

// Column returns the definition for key, if present.
func (r *ResolvedTableConfig) Column(key string) (ColumnDefinition, bool) {
	for _, col := range r.Columns {
		if col.Column == key {
			return col, true
		}
	}
	return ColumnDefinition{}, false
}

// ColumnKeys returns the column keys in resolved order.
func (r *ResolvedTableConfig) ColumnKeys() []string {
	keys := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		keys[i] = col.Column
	}
	return keys
}

// Category returns the category definition for id, if present.
func (r *ResolvedTableConfig) Category(id string) (CategoryDefinition, bool) {
	for _, cat := range r.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return CategoryDefinition{}, false
}

// Bool returns a pointer to v, for building tri-state fields in literals.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for building optional order fields in literals.
func Int(v int) *int { return &v }

func copyBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (c CategoryDefinition) clone() CategoryDefinition {
	c.Order = copyInt(c.Order)
	return c
}

func (c ColumnDefinition) clone() ColumnDefinition {
	c.Visible = copyBool(c.Visible)
	c.Sortable = copyBool(c.Sortable)
	c.Filterable = copyBool(c.Filterable)
	if c.Categories != nil {
		c.Categories = append([]string(nil), c.Categories...)
	}
	if c.Transform != nil {
		chain := make(TransformChain, len(c.Transform))
		for i, spec := range c.Transform {
			chain[i] = spec.clone()
		}
		c.Transform = chain
	}
	return c
}

func (s TransformerSpec) clone() TransformerSpec {
	if s.Options != nil {
		s.Options = copyOptionMap(s.Options)
	}
	return s
}

// copyOptionMap deep-copies decoded transformer options. Nested maps and
// slices from the JSON/YAML decoders are duplicated so a resolved
// configuration never aliases schema-owned values; scalars copy as is.
func copyOptionMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = copyOptionValue(v)
	}
	return out
}

func copyOptionValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return copyOptionMap(t)
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, e := range t {
			s[i] = copyOptionValue(e)
		}
		return s
	default:
		return v
	}
}
