// Package seqtree provides the public API for building render trees with
// stable, line-derived sequence numbers.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/seqtree"
//
// Usage:
//
//	html, err := seqtree.RenderHTML(func(b *seqtree.Builder) {
//		b.Element("ul", seqtree.A("class", "items"))
//		b.Element("li").Text("one").Close()
//		b.Close()
//	})
package seqtree

import (
	"context"

	"github.com/vango-dev/seqtree/pkg/builder"
	"github.com/vango-dev/seqtree/pkg/render"
	"github.com/vango-dev/seqtree/pkg/rendertree"
)

// =============================================================================
// Builder
// =============================================================================

// Builder is the fluent sequenced tree builder.
type Builder = builder.Builder

// Option configures a Builder.
type Option = builder.Option

// Attr is a name/value pair for elements and component parameters.
type Attr = builder.Attr

// Stats summarizes a build pass.
type Stats = builder.Stats

// Observer receives build events.
type Observer = builder.Observer

// LineMode selects how operations are attributed to lines.
type LineMode = builder.LineMode

// Line modes.
const (
	LineCaller  = builder.LineCaller
	LineCounter = builder.LineCounter
)

// DefaultMaxPerLine is the default per-line sequence capacity.
const DefaultMaxPerLine = builder.DefaultMaxPerLine

// New creates a Builder writing to sink.
func New(sink Sink, opts ...Option) (*Builder, error) {
	return builder.New(sink, opts...)
}

// Run builds into sink and finishes the builder, returning its first error.
func Run(sink Sink, build func(b *Builder), opts ...Option) error {
	return builder.Run(sink, build, opts...)
}

// RunContext is Run with a trace span parented on ctx.
func RunContext(ctx context.Context, sink Sink, build func(b *Builder), opts ...Option) error {
	return builder.RunContext(ctx, sink, build, opts...)
}

// A creates an Attr.
func A(name string, value any) Attr {
	return builder.A(name, value)
}

// Options.
var (
	WithPrettyPrint = builder.WithPrettyPrint
	WithBaseIndent  = builder.WithBaseIndent
	WithMaxPerLine  = builder.WithMaxPerLine
	WithIndentUnit  = builder.WithIndentUnit
	WithLineMode    = builder.WithLineMode
	WithLogger      = builder.WithLogger
	WithObserver    = builder.WithObserver
	WithTracer      = builder.WithTracer
)

// Errors.
var (
	ErrOutOfOrderLine  = builder.ErrOutOfOrderLine
	ErrLineOverflow    = builder.ErrLineOverflow
	ErrUnbalancedClose = builder.ErrUnbalancedClose
	ErrFinished        = builder.ErrFinished
	ErrInvalidConfig   = builder.ErrInvalidConfig
)

// =============================================================================
// Render tree
// =============================================================================

// Sink receives render-tree frames.
type Sink = rendertree.Sink

// Frame is one recorded render-tree frame.
type Frame = rendertree.Frame

// Component builds its own subtree.
type Component = rendertree.Component

// Fragment is a reusable piece of tree.
type Fragment = rendertree.Fragment

// Recorder is a Sink that stores frames.
type Recorder = rendertree.Recorder

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return rendertree.NewRecorder()
}

// =============================================================================
// Rendering
// =============================================================================

// Build runs build into a new Recorder and returns the validated frames.
func Build(build func(b *Builder), opts ...Option) ([]Frame, error) {
	rec := rendertree.NewRecorder()
	if err := builder.Run(rec, build, opts...); err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec.Frames(), nil
}

// RenderHTML builds and renders to an HTML string. Whitespace comes only
// from the builder's pretty printer.
func RenderHTML(build func(b *Builder), opts ...Option) (string, error) {
	frames, err := Build(build, opts...)
	if err != nil {
		return "", err
	}
	return render.NewRenderer(render.Config{}).RenderToString(frames)
}
