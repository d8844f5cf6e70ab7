package visibility

import (
	"sync"

	"go.uber.org/zap"

	"github.com/tesseradata/tessera/pkg/config"
	"github.com/tesseradata/tessera/pkg/logger"
	"github.com/tesseradata/tessera/pkg/metrics"
	"github.com/tesseradata/tessera/pkg/state"
)

// Config configures a Coordinator.
type Config struct {
	// AndSemantics makes a multi-category column visible only when every
	// assigned category is visible. The default is OR: any visible category
	// shows the column.
	AndSemantics bool
	// State, when set, receives the visibility results after every
	// operation.
	State *state.AppState
}

// Coordinator owns the visibility state for the active table and exposes
// deterministic, idempotent operations over it.
type Coordinator struct {
	mu              sync.RWMutex
	resolved        *config.ResolvedTableConfig
	visible         map[string]bool
	categoryVisible map[string]bool

	andSemantics bool
	sink         *state.AppState
	logger       *zap.Logger
}

// New creates a Coordinator with no active table. Call Initialize with a
// resolved configuration before toggling.
func New(cfg Config) *Coordinator {
	return &Coordinator{
		visible:         make(map[string]bool),
		categoryVisible: make(map[string]bool),
		andSemantics:    cfg.AndSemantics,
		sink:            cfg.State,
		logger:          logger.Get().With(zap.String("component", "visibility")),
	}
}

// Initialize seeds the visibility state from a resolved configuration:
// category flags from defaultVisible, column membership from the
// initialization rule. Seeding is deterministic; the same resolved
// configuration always yields the same state. A nil resolved clears the
// coordinator.
func (c *Coordinator) Initialize(resolved *config.ResolvedTableConfig) {
	c.mu.Lock()
	c.resolved = resolved
	c.seedLocked()
	visible, flags := copyFlags(c.visible), copyFlags(c.categoryVisible)
	c.mu.Unlock()

	if resolved != nil {
		c.logger.Debug("visibility initialized",
			zap.String("table", resolved.Name),
			zap.Int("visible_columns", len(visible)),
			zap.Int("categories", len(flags)))
	}
	c.recordGauge(resolved, visible)
	if c.sink != nil {
		c.sink.SetActive(resolved, visible, flags)
	}
}

// Reset returns the active table to its seeded state, discarding every
// column and category toggle made since initialization.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	if c.resolved == nil {
		c.mu.Unlock()
		return
	}
	c.seedLocked()
	resolved, visible, flags := c.resolved, copyFlags(c.visible), copyFlags(c.categoryVisible)
	c.mu.Unlock()

	c.publish(resolved, visible, flags)
}

// ToggleCategory flips the category's visible flag and regenerates the
// entire visible-column set from the live flags. An unknown id is a silent
// no-op: UI toggle sources are generated from the same category list, so an
// unknown id is a stale reference, not a fatal error.
func (c *Coordinator) ToggleCategory(id string) {
	c.mu.Lock()
	if _, known := c.categoryVisible[id]; !known {
		c.mu.Unlock()
		c.logger.Debug("toggle for unknown category ignored", zap.String("category", id))
		metrics.UnknownToggleTargets.WithLabelValues("category").Inc()
		return
	}
	c.categoryVisible[id] = !c.categoryVisible[id]
	c.recomputeLocked()
	resolved, visible, flags := c.resolved, copyFlags(c.visible), copyFlags(c.categoryVisible)
	c.mu.Unlock()

	metrics.TogglesTotal.WithLabelValues("category").Inc()
	c.publish(resolved, visible, flags)
}

// ToggleColumn flips a single column's membership in the visible set,
// leaving category flags untouched. An unknown key is a silent no-op.
func (c *Coordinator) ToggleColumn(key string) {
	c.mu.Lock()
	if c.resolved == nil {
		c.mu.Unlock()
		return
	}
	if _, ok := c.resolved.Column(key); !ok {
		c.mu.Unlock()
		c.logger.Debug("toggle for unknown column ignored", zap.String("column", key))
		metrics.UnknownToggleTargets.WithLabelValues("column").Inc()
		return
	}
	if c.visible[key] {
		delete(c.visible, key)
	} else {
		c.visible[key] = true
	}
	resolved, visible, flags := c.resolved, copyFlags(c.visible), copyFlags(c.categoryVisible)
	c.mu.Unlock()

	metrics.TogglesTotal.WithLabelValues("column").Inc()
	c.publish(resolved, visible, flags)
}

// ToggleAll implements the bulk show/hide action. One "all categories
// visible?" scan runs before the batch and is never re-evaluated mid-batch:
// if every category is visible, all are hidden, otherwise every hidden one
// is shown. The visible set is then regenerated once.
func (c *Coordinator) ToggleAll() {
	c.mu.Lock()
	if c.resolved == nil {
		c.mu.Unlock()
		return
	}

	allVisible := true
	for _, cat := range c.resolved.Categories {
		if !c.categoryVisible[cat.ID] {
			allVisible = false
			break
		}
	}
	for _, cat := range c.resolved.Categories {
		c.categoryVisible[cat.ID] = !allVisible
	}
	c.recomputeLocked()
	resolved, visible, flags := c.resolved, copyFlags(c.visible), copyFlags(c.categoryVisible)
	c.mu.Unlock()

	metrics.TogglesTotal.WithLabelValues("all").Inc()
	c.publish(resolved, visible, flags)
}

// VisibleColumns returns the current visible-column membership set.
func (c *Coordinator) VisibleColumns() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyFlags(c.visible)
}

// IsVisible reports whether the column key is currently visible.
func (c *Coordinator) IsVisible(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visible[key]
}

// Categories returns the active categories in resolved (configured) order.
func (c *Coordinator) Categories() []config.CategoryDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.resolved == nil {
		return nil
	}
	return append([]config.CategoryDefinition(nil), c.resolved.Categories...)
}

// CategoryVisible reports a category's visible flag. Unknown ids read as
// hidden.
func (c *Coordinator) CategoryVisible(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categoryVisible[id]
}

// seedLocked rebuilds both maps from the resolved configuration's defaults.
func (c *Coordinator) seedLocked() {
	c.categoryVisible = make(map[string]bool)
	c.visible = make(map[string]bool)
	if c.resolved == nil {
		return
	}
	for _, cat := range c.resolved.Categories {
		c.categoryVisible[cat.ID] = cat.DefaultVisible
	}
	for _, col := range c.resolved.Columns {
		if c.columnVisibleLocked(col) {
			c.visible[col.Column] = true
		}
	}
}

// recomputeLocked regenerates the visible set from the live category flags.
// Every column with at least one category is re-evaluated from scratch,
// discarding manual toggles on it; zero-category columns keep their prior
// membership.
func (c *Coordinator) recomputeLocked() {
	if c.resolved == nil {
		return
	}
	next := make(map[string]bool, len(c.visible))
	for _, col := range c.resolved.Columns {
		if len(col.Categories) == 0 {
			if c.visible[col.Column] {
				next[col.Column] = true
			}
			continue
		}
		if c.columnVisibleLocked(col) {
			next[col.Column] = true
		}
	}
	c.visible = next
}

// columnVisibleLocked evaluates the visibility rule for one column against
// the current category flags. An explicit visible flag pins the column
// regardless of its categories.
func (c *Coordinator) columnVisibleLocked(col config.ColumnDefinition) bool {
	if col.Visible != nil {
		return *col.Visible
	}
	if len(col.Categories) == 0 {
		return true
	}
	if c.andSemantics {
		for _, id := range col.Categories {
			if !c.categoryVisible[id] {
				return false
			}
		}
		return true
	}
	for _, id := range col.Categories {
		if c.categoryVisible[id] {
			return true
		}
	}
	return false
}

func (c *Coordinator) publish(resolved *config.ResolvedTableConfig, visible, flags map[string]bool) {
	c.recordGauge(resolved, visible)
	if c.sink != nil {
		c.sink.SetVisibility(visible, flags)
	}
}

func (c *Coordinator) recordGauge(resolved *config.ResolvedTableConfig, visible map[string]bool) {
	if resolved == nil {
		return
	}
	metrics.ActiveColumns.WithLabelValues(resolved.Name).Set(float64(len(visible)))
}

func copyFlags(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
