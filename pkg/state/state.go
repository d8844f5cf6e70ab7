// Package state holds the shared application state record: the active
// table, its resolved configuration, and the current visibility state.
//
// The visibility coordinator and table-activation glue write; UI-side
// consumers read copies and subscribe to changes. Snapshots copy every
// mutable field, so readers never alias engine-owned maps.
package state

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/tesseradata/tessera/pkg/config"
	"github.com/tesseradata/tessera/pkg/logger"
)

// Snapshot is a point-in-time copy of the application state. Resolved is
// shared by pointer because resolved configurations are immutable; the maps
// are copies.
type Snapshot struct {
	ActiveTable     string
	Resolved        *config.ResolvedTableConfig
	VisibleColumns  map[string]bool
	CategoryVisible map[string]bool
}

// AppState is the single mutable record shared across the engine.
type AppState struct {
	mu              sync.RWMutex
	activeTable     string
	resolved        *config.ResolvedTableConfig
	visible         map[string]bool
	categoryVisible map[string]bool

	subscribers map[int]func(Snapshot)
	nextSubID   int
	logger      *zap.Logger
}

// New creates an empty application state.
func New() *AppState {
	return &AppState{
		visible:         make(map[string]bool),
		categoryVisible: make(map[string]bool),
		subscribers:     make(map[int]func(Snapshot)),
		logger:          logger.Get().With(zap.String("component", "app_state")),
	}
}

// SetActive replaces the whole record on table activation: the resolved
// configuration is swapped wholesale, never patched, together with its
// seeded visibility state.
func (s *AppState) SetActive(resolved *config.ResolvedTableConfig, visible, categoryVisible map[string]bool) {
	s.mu.Lock()
	s.resolved = resolved
	s.activeTable = ""
	if resolved != nil {
		s.activeTable = resolved.Name
	}
	s.visible = copyFlags(visible)
	s.categoryVisible = copyFlags(categoryVisible)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("active table replaced",
		zap.String("table", snapshot.ActiveTable),
		zap.Int("visible_columns", len(snapshot.VisibleColumns)))
	s.notify(snapshot)
}

// SetVisibility publishes a new visibility state for the active table.
func (s *AppState) SetVisibility(visible, categoryVisible map[string]bool) {
	s.mu.Lock()
	s.visible = copyFlags(visible)
	s.categoryVisible = copyFlags(categoryVisible)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// ActiveTable returns the active table name, empty when none is active.
func (s *AppState) ActiveTable() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeTable
}

// Resolved returns the active resolved configuration, nil when none is
// active. The result is read-only by contract.
func (s *AppState) Resolved() *config.ResolvedTableConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}

// VisibleColumns returns a copy of the visible-column membership set.
func (s *AppState) VisibleColumns() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFlags(s.visible)
}

// IsVisible reports whether the column key is currently visible.
func (s *AppState) IsVisible(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible[key]
}

// CategoryVisible reports a category's visible flag and whether the id is
// known.
func (s *AppState) CategoryVisible(id string) (visible, known bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visible, known = s.categoryVisible[id]
	return visible, known
}

// Snapshot returns a point-in-time copy of the whole record.
func (s *AppState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *AppState) snapshotLocked() Snapshot {
	return Snapshot{
		ActiveTable:     s.activeTable,
		Resolved:        s.resolved,
		VisibleColumns:  copyFlags(s.visible),
		CategoryVisible: copyFlags(s.categoryVisible),
	}
}

// Subscribe registers fn to run after every state change, with the new
// snapshot. It returns an unsubscribe function. Callbacks run synchronously
// on the mutating goroutine in subscription order, outside the state lock,
// so they may read state but must not mutate it.
func (s *AppState) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *AppState) notify(snapshot Snapshot) {
	s.mu.RLock()
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.subscribers[id])
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func copyFlags(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
