package refcell

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// cellConfig holds per-cell configuration set at construction. The zero value
// (what every zero-value cell carries) names nothing and observes nothing.
type cellConfig struct {
	name    string
	logger  *slog.Logger
	metrics metricsRecorder
	tracing bool
}

// newCellConfig applies options. A cell that observes anything gets a stable
// identity for attribution even when the caller didn't name it.
func newCellConfig(opts []Option) cellConfig {
	var cfg cellConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.name == "" && (cfg.logger != nil || cfg.metrics != nil || cfg.tracing) {
		cfg.name = fmt.Sprintf("cell-%s", uuid.New().String()[:8])
	}
	return cfg
}

// label returns the cell's name for log fields, metric attributes, and panic
// messages.
func (cfg *cellConfig) label() string {
	if cfg.name != "" {
		return cfg.name
	}
	return "anonymous"
}

// record returns the configured metrics recorder, or a noop one.
func (cfg *cellConfig) record() metricsRecorder {
	if cfg.metrics == nil {
		return noopMetrics{}
	}
	return cfg.metrics
}

// logEvent emits a Debug log for a slot transition, if a logger is set.
func (cfg *cellConfig) logEvent(msg string, attrs ...any) {
	if cfg.logger == nil {
		return
	}
	cfg.logger.Debug(msg, append([]any{"cell", cfg.label()}, attrs...)...)
}

// Option configures a cell at construction via NewRef or NewMut.
type Option func(*cellConfig)

// WithName sets the cell's name, used in panic messages, log fields, and
// metric attributes.
//
// Example:
//
//	var config = refcell.NewRef[AppConfig](refcell.WithName("app-config"))
func WithName(name string) Option {
	return func(cfg *cellConfig) {
		cfg.name = name
	}
}

// WithLogger enables Debug-level logging of slot transitions (register,
// clear, scoped enter/exit) on the given logger. Cells log nothing by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *cellConfig) {
		cfg.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for the cell: registration,
// clear, read, and miss counters plus a scoped-registration duration
// histogram. Uses the global OTel meter provider. Default: disabled.
func WithMetrics(enabled bool) Option {
	return func(cfg *cellConfig) {
		if enabled {
			cfg.metrics = defaultMetrics()
		} else {
			cfg.metrics = nil
		}
	}
}

// WithTracing enables an OpenTelemetry span around each scoped registration
// (With). Uses the global OTel tracer provider. Default: disabled.
func WithTracing(enabled bool) Option {
	return func(cfg *cellConfig) {
		cfg.tracing = enabled
	}
}
