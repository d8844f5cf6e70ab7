package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseradata/tessera/pkg/config"
	"github.com/tesseradata/tessera/pkg/state"
	"github.com/tesseradata/tessera/pkg/testutil"
)

func resolvedFixture() *config.ResolvedTableConfig {
	return testutil.SampleResolved()
}

func visibleKeys(c *Coordinator) map[string]bool {
	return c.VisibleColumns()
}

func TestInitialize_SeedsFromDefaults(t *testing.T) {
	c := New(Config{})
	c.Initialize(resolvedFixture())

	assert.Equal(t, map[string]bool{"id": true, "notes": true}, visibleKeys(c))
	assert.True(t, c.CategoryVisible("core"))
	assert.False(t, c.CategoryVisible("seq"))
}

func TestInitialize_Deterministic(t *testing.T) {
	resolved := resolvedFixture()

	c1 := New(Config{})
	c1.Initialize(resolved)
	c1.ToggleColumn("id")
	c1.ToggleCategory("seq")

	// Re-initializing from the same resolved config discards all of that.
	c1.Initialize(resolved)

	c2 := New(Config{})
	c2.Initialize(resolved)

	assert.Equal(t, c2.VisibleColumns(), c1.VisibleColumns())
	assert.Equal(t, c2.CategoryVisible("seq"), c1.CategoryVisible("seq"))
}

func TestInitialize_ExplicitFlagsWin(t *testing.T) {
	resolved := resolvedFixture()
	resolved.Columns = append(resolvedFixture().Columns,
		config.ColumnDefinition{Column: "pinned_on", Visible: config.Bool(true), Categories: []string{"seq"}},
		config.ColumnDefinition{Column: "pinned_off", Visible: config.Bool(false), Categories: []string{"core"}},
	)

	c := New(Config{})
	c.Initialize(resolved)

	assert.True(t, c.IsVisible("pinned_on"), "explicit true beats hidden categories")
	assert.False(t, c.IsVisible("pinned_off"), "explicit false beats visible categories")
}

func TestInitializeAndToggleScenario(t *testing.T) {
	resolved := &config.ResolvedTableConfig{
		Name: "variants",
		Categories: []config.CategoryDefinition{
			{ID: "core", DefaultVisible: true},
			{ID: "seq", DefaultVisible: false},
		},
		Columns: []config.ColumnDefinition{
			{Column: "id", Categories: []string{"core"}},
			{Column: "seq", Categories: []string{"seq"}},
		},
	}

	c := New(Config{})
	c.Initialize(resolved)
	assert.Equal(t, map[string]bool{"id": true}, c.VisibleColumns())

	c.ToggleCategory("seq")
	assert.Equal(t, map[string]bool{"id": true, "seq": true}, c.VisibleColumns())
}

func TestToggleCategory_ClobbersManualHide(t *testing.T) {
	c := New(Config{})
	c.Initialize(resolvedFixture())

	c.ToggleColumn("id")
	require.False(t, c.IsVisible("id"), "manual hide")

	// Cycle the category off and back on. The recompute regenerates the
	// whole set from category flags, so the manual hide is discarded.
	c.ToggleCategory("core")
	assert.False(t, c.IsVisible("id"))
	c.ToggleCategory("core")
	assert.True(t, c.IsVisible("id"),
		"category toggle must clobber the earlier manual column override")
}

func TestToggleCategory_RestoresPinnedColumns(t *testing.T) {
	resolved := resolvedFixture()
	resolved.Columns = append(resolved.Columns,
		config.ColumnDefinition{Column: "always", Visible: config.Bool(true), Categories: []string{"seq"}})

	c := New(Config{})
	c.Initialize(resolved)
	require.True(t, c.IsVisible("always"))

	c.ToggleColumn("always")
	require.False(t, c.IsVisible("always"))

	c.ToggleCategory("seq")
	assert.True(t, c.IsVisible("always"),
		"recompute pins explicitly-visible columns back on")
}

func TestToggleCategory_UnknownIsNoOp(t *testing.T) {
	c := New(Config{})
	c.Initialize(resolvedFixture())
	before := c.VisibleColumns()

	c.ToggleCategory("ghost")

	assert.Equal(t, before, c.VisibleColumns())
	assert.True(t, c.CategoryVisible("core"))
}

func TestToggleColumn_FlipsMembershipOnly(t *testing.T) {
	c := New(Config{})
	c.Initialize(resolvedFixture())

	c.ToggleColumn("sequence")
	assert.True(t, c.IsVisible("sequence"))
	assert.False(t, c.CategoryVisible("seq"), "column toggles never touch category flags")

	c.ToggleColumn("sequence")
	assert.False(t, c.IsVisible("sequence"))
}

func TestToggleColumn_UnknownIsNoOp(t *testing.T) {
	c := New(Config{})
	c.Initialize(resolvedFixture())
	before := c.VisibleColumns()

	c.ToggleColumn("ghost")
	assert.Equal(t, before, c.VisibleColumns())
}

func TestZeroCategoryColumnsImmuneToCategoryToggles(t *testing.T) {
	c := New(Config{})
	c.Initialize(resolvedFixture())

	c.ToggleColumn("notes")
	require.False(t, c.IsVisible("notes"))

	c.ToggleCategory("core")
	c.ToggleCategory("seq")
	c.ToggleCategory("core")
	assert.False(t, c.IsVisible("notes"),
		"no category toggle can affect a column with no categories")

	c.ToggleColumn("notes")
	c.ToggleCategory("seq")
	assert.True(t, c.IsVisible("notes"))
}

func TestMultiCategory_OrAndSemantics(t *testing.T) {
	resolved := &config.ResolvedTableConfig{
		Name: "variants",
		Categories: []config.CategoryDefinition{
			{ID: "a", DefaultVisible: true},
			{ID: "b", DefaultVisible: false},
		},
		Columns: []config.ColumnDefinition{
			{Column: "both", Categories: []string{"a", "b"}},
		},
	}

	or := New(Config{})
	or.Initialize(resolved)
	assert.True(t, or.IsVisible("both"), "OR: one visible category suffices")

	and := New(Config{AndSemantics: true})
	and.Initialize(resolved)
	assert.False(t, and.IsVisible("both"), "AND: every category must be visible")

	and.ToggleCategory("b")
	assert.True(t, and.IsVisible("both"))
}

func TestToggleAll(t *testing.T) {
	c := New(Config{})
	c.Initialize(resolvedFixture())
	require.True(t, c.CategoryVisible("core"))
	require.False(t, c.CategoryVisible("seq"))

	// Mixed state: not all visible, so show all.
	c.ToggleAll()
	assert.True(t, c.CategoryVisible("core"))
	assert.True(t, c.CategoryVisible("seq"))
	assert.Equal(t, map[string]bool{"id": true, "sequence": true, "notes": true}, c.VisibleColumns())

	// All visible, so hide all.
	c.ToggleAll()
	assert.False(t, c.CategoryVisible("core"))
	assert.False(t, c.CategoryVisible("seq"))
	assert.Equal(t, map[string]bool{"notes": true}, c.VisibleColumns(),
		"zero-category columns stay put during bulk toggles")

	// The pair cycles between the two baselines.
	c.ToggleAll()
	assert.True(t, c.CategoryVisible("core"))
	assert.True(t, c.CategoryVisible("seq"))
}

func TestReset_RestoresSeededState(t *testing.T) {
	c := New(Config{})
	c.Initialize(resolvedFixture())

	c.ToggleCategory("seq")
	c.ToggleColumn("notes")
	c.ToggleColumn("id")

	c.Reset()

	assert.Equal(t, map[string]bool{"id": true, "notes": true}, c.VisibleColumns())
	assert.True(t, c.CategoryVisible("core"))
	assert.False(t, c.CategoryVisible("seq"))
}

func TestCategories_ResolvedOrder(t *testing.T) {
	c := New(Config{})
	c.Initialize(resolvedFixture())

	cats := c.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "core", cats[0].ID)
	assert.Equal(t, "seq", cats[1].ID)
}

func TestCoordinator_BeforeInitialize(t *testing.T) {
	c := New(Config{})

	c.ToggleCategory("core")
	c.ToggleColumn("id")
	c.ToggleAll()
	c.Reset()

	assert.Empty(t, c.VisibleColumns())
	assert.Nil(t, c.Categories())
}

func TestCoordinator_PublishesToState(t *testing.T) {
	appState := state.New()
	var notifications int
	appState.Subscribe(func(state.Snapshot) { notifications++ })

	c := New(Config{State: appState})
	c.Initialize(resolvedFixture())

	assert.Equal(t, "variants", appState.ActiveTable())
	assert.True(t, appState.IsVisible("id"))
	assert.Equal(t, 1, notifications)

	c.ToggleCategory("seq")
	assert.True(t, appState.IsVisible("sequence"))
	visible, known := appState.CategoryVisible("seq")
	assert.True(t, known)
	assert.True(t, visible)
	assert.Equal(t, 2, notifications)

	c.ToggleColumn("notes")
	assert.False(t, appState.IsVisible("notes"))
	assert.Equal(t, 3, notifications)
}
