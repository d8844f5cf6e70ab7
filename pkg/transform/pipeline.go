package transform

import (
	"go.uber.org/zap"

	"github.com/tesseradata/tessera/pkg/config"
	"github.com/tesseradata/tessera/pkg/logger"
	"github.com/tesseradata/tessera/pkg/metrics"
)

// Apply evaluates col's transform field against a raw cell value.
//
// A nil raw value renders as the registry placeholder before any stage runs,
// identically for every transformer type. A column without a transform
// renders the default string representation. Chains run left to right: each
// stage's string output is the next stage's input, so only the first stage
// sees the raw value's native type.
//
// Lookup misses are never errors. A single spec with an unknown type returns
// exactly what a column with no transform returns, and an unresolvable chain
// stage degrades to the default representation of its input while the rest
// of the chain continues.
func (r *Registry) Apply(col *config.ColumnDefinition, raw interface{}) string {
	if raw == nil {
		return r.Placeholder()
	}
	if col == nil || len(col.Transform) == 0 {
		return DefaultString(raw)
	}

	value := raw
	for _, spec := range col.Transform {
		fn, ok := r.Lookup(spec.Type)
		if !ok {
			logger.Debug("unknown transformer type, using default representation",
				zap.String("type", spec.Type),
				zap.String("column", col.Column))
			metrics.TransformFallbacks.WithLabelValues(spec.Type, "unknown_type").Inc()
			metrics.ObserveTransform(spec.Type, false)
			value = DefaultString(value)
			continue
		}
		value = fn(value, Options(spec.Options))
		metrics.ObserveTransform(spec.Type, true)
	}

	if s, ok := value.(string); ok {
		return s
	}
	return DefaultString(value)
}

// Apply evaluates col's transform field using the default registry.
func Apply(col *config.ColumnDefinition, raw interface{}) string {
	return Default.Apply(col, raw)
}
