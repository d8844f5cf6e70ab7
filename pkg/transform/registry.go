package transform

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/tesseradata/tessera/pkg/logger"
)

// DefaultPlaceholder is the rendering of null cell values: an em dash.
const DefaultPlaceholder = "—"

// Func formats a raw cell value using one transformer spec's options.
// Implementations must be pure: no I/O, no shared state, deterministic for a
// given (value, options) pair, so exported and cached output is reproducible.
type Func func(value interface{}, opts Options) string

// Registry manages transformer registration and lookup. The zero value is
// not usable; call NewRegistry.
type Registry struct {
	transformers map[string]Func
	placeholder  string
	mu           sync.RWMutex
}

// Default is the process-wide registry. Built-ins register into it on
// import; plugins override by registering the same name later.
var Default = NewRegistry()

// NewRegistry creates an empty transformer registry.
func NewRegistry() *Registry {
	return &Registry{
		transformers: make(map[string]Func),
		placeholder:  DefaultPlaceholder,
	}
}

// Register adds a transformer under name. The last registration for a name
// wins, which is what lets plugins replace built-ins. A nil fn is ignored.
func (r *Registry) Register(name string, fn Func) {
	if name == "" || fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transformers[name]; exists {
		logger.Debug("transformer overridden", zap.String("type", name))
	}
	r.transformers[name] = fn
}

// Unregister removes a transformer. Columns referencing the name afterwards
// degrade to the default representation.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.transformers, name)
}

// Lookup returns the transformer registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.transformers[name]
	return fn, ok
}

// Has reports whether a transformer is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered transformer type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.transformers))
	for name := range r.transformers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetPlaceholder overrides how this registry renders null cell values.
// Empty input keeps the current placeholder.
func (r *Registry) SetPlaceholder(p string) {
	if p == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placeholder = p
}

// Placeholder returns the current null-value rendering.
func (r *Registry) Placeholder() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.placeholder
}

// Clear removes all registered transformers (mainly for testing).
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transformers = make(map[string]Func)
}

// Global registry functions

// Register adds a transformer to the default registry.
func Register(name string, fn Func) {
	Default.Register(name, fn)
}

// Unregister removes a transformer from the default registry.
func Unregister(name string) {
	Default.Unregister(name)
}

// Lookup returns a transformer from the default registry.
func Lookup(name string) (Func, bool) {
	return Default.Lookup(name)
}

// Has reports whether the default registry knows name.
func Has(name string) bool {
	return Default.Has(name)
}

// Names returns the default registry's transformer names, sorted.
func Names() []string {
	return Default.Names()
}

// SetPlaceholder overrides the default registry's null-value rendering.
func SetPlaceholder(p string) {
	Default.SetPlaceholder(p)
}
