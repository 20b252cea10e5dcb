package builder

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/rendertree"
)

// TracerName is the name of the default tracer used by RunContext.
const TracerName = "seqtree"

// Run creates a Builder for sink, passes it to build, and always finishes
// it, also when build panics (the panic is re-raised after Finish). It
// returns the builder's first error.
func Run(sink rendertree.Sink, build func(b *Builder), opts ...Option) error {
	return RunContext(context.Background(), sink, build, opts...)
}

// RunContext is Run with a trace span around the build pass. ctx is used
// only as the span parent.
func RunContext(ctx context.Context, sink rendertree.Sink, build func(b *Builder), opts ...Option) (err error) {
	b, err := New(sink, opts...)
	if err != nil {
		return err
	}

	tracer := b.cfg.tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	_, span := tracer.Start(ctx, "seqtree.build",
		trace.WithAttributes(
			attribute.Bool("seqtree.pretty", b.cfg.pretty),
			attribute.Int("seqtree.max_per_line", b.cfg.maxPerLine),
			attribute.String("seqtree.line_mode", b.cfg.lineMode.String()),
		),
	)

	defer func() {
		r := recover()
		err = b.Finish()

		stats := b.Stats()
		span.SetAttributes(
			attribute.Int("seqtree.operations", stats.Operations),
			attribute.Int("seqtree.sequences", stats.Sequences),
			attribute.Int("seqtree.max_depth", stats.MaxDepth),
		)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("seqtree.error_code", errors.CodeOf(err)))
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		if r != nil {
			panic(r)
		}
	}()

	build(b)
	return nil
}
