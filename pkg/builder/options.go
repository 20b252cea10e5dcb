package builder

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// DefaultIndentUnit is the string repeated once per indentation level.
const DefaultIndentUnit = "\t"

// config holds the immutable builder configuration.
type config struct {
	pretty     bool
	baseIndent int
	maxPerLine int
	indentUnit string
	lineMode   LineMode
	logger     *slog.Logger
	observer   Observer
	tracer     trace.Tracer
}

func defaultConfig() config {
	return config{
		maxPerLine: DefaultMaxPerLine,
		indentUnit: DefaultIndentUnit,
		lineMode:   LineCaller,
	}
}

// Option configures a Builder.
type Option func(*config)

// WithPrettyPrint enables or disables whitespace fragments around blocks.
func WithPrettyPrint(enabled bool) Option {
	return func(c *config) {
		c.pretty = enabled
	}
}

// WithBaseIndent sets the indentation depth of the outermost blocks.
// Must be >= 0.
func WithBaseIndent(depth int) Option {
	return func(c *config) {
		c.baseIndent = depth
	}
}

// WithMaxPerLine sets the per-line operation capacity. It must exceed the
// number of sub-operations any single call can emit, pretty-print
// fragments included.
func WithMaxPerLine(n int) Option {
	return func(c *config) {
		c.maxPerLine = n
	}
}

// WithIndentUnit sets the string written once per indentation level.
func WithIndentUnit(unit string) Option {
	return func(c *config) {
		c.indentUnit = unit
	}
}

// WithLineMode selects how operations are attributed to lines.
func WithLineMode(mode LineMode) Option {
	return func(c *config) {
		c.lineMode = mode
	}
}

// WithLogger enables one info record per issued sequence number.
// A nil logger disables logging, which is the default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithObserver registers an Observer for builder events.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

// WithTracer sets the tracer used by RunContext. Defaults to the global
// OpenTelemetry tracer named "seqtree".
func WithTracer(t trace.Tracer) Option {
	return func(c *config) {
		c.tracer = t
	}
}
