package builder

import (
	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/rendertree"
)

// Builder writes a render tree into a sink through chainable calls.
type Builder struct {
	sink   rendertree.Sink
	cfg    config
	seq    *Sequencer
	blocks []BlockKind

	counter    int
	pinned     bool
	pinnedLine int

	stats    Stats
	err      error
	finished bool
}

// New creates a Builder bound to sink.
func New(sink rendertree.Sink, opts ...Option) (*Builder, error) {
	if sink == nil {
		return nil, errors.New(errors.CodeInvalidConfig).WithDetail("sink is nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.baseIndent < 0 {
		return nil, errors.New(errors.CodeInvalidConfig).
			WithDetailf("base indent must be >= 0, got %d", cfg.baseIndent)
	}
	if cfg.lineMode != LineCaller && cfg.lineMode != LineCounter {
		return nil, errors.New(errors.CodeInvalidConfig).
			WithDetailf("unknown line mode %d", cfg.lineMode)
	}

	seq, err := NewSequencer(cfg.maxPerLine)
	if err != nil {
		return nil, err
	}

	return &Builder{
		sink: sink,
		cfg:  cfg,
		seq:  seq,
	}, nil
}

// Sink returns the sink the builder writes into.
func (b *Builder) Sink() rendertree.Sink {
	return b.sink
}

// Err returns the first error the builder hit, if any.
func (b *Builder) Err() error {
	return b.err
}

// Depth returns the number of open blocks.
func (b *Builder) Depth() int {
	return len(b.blocks)
}

// LastSequence returns the last sequence number issued, or -1.
func (b *Builder) LastSequence() int {
	return b.seq.Last()
}

// LastLine returns the last line a sequence number was issued for, or -1.
func (b *Builder) LastLine() int {
	return b.seq.Line()
}

// Stats returns counters for the build so far.
func (b *Builder) Stats() Stats {
	return b.stats
}

// Finished reports whether Finish has been called.
func (b *Builder) Finished() bool {
	return b.finished
}

// Finish ends the build pass. It fails with ErrUnbalancedClose if any block
// is still open, and returns the sticky error if an earlier operation
// failed. With pretty printing enabled, a successful Finish ends the output
// with a newline. Calling Finish again returns the same result.
func (b *Builder) Finish() error {
	if b.finished {
		return b.err
	}
	b.finished = true

	if b.err != nil {
		return b.err
	}

	if n := len(b.blocks); n > 0 {
		b.fail(errors.New(errors.CodeUnbalancedClose).
			WithDetailf("%d block(s) left open at finish, innermost %s", n, b.blocks[n-1]), nil)
		return b.err
	}

	if b.cfg.pretty && b.seq.Last() >= 0 {
		c := &call{op: "Finish", line: b.seq.Line()}
		seq, ok := b.next(c)
		if !ok {
			return b.err
		}
		b.sink.AddMarkupContent(seq, "\n")
	}

	if b.cfg.observer != nil {
		b.cfg.observer.BuildFinished(b.stats)
	}
	return nil
}

// usable reports whether an operation may proceed.
func (b *Builder) usable(c *call) bool {
	if b.err != nil {
		return false
	}
	if b.finished {
		b.fail(errors.New(errors.CodeFinished).WithDetailf("%s after Finish", c.op), c)
		return false
	}
	return true
}

// next issues the sequence number for one sink call of c.
func (b *Builder) next(c *call) (int, bool) {
	prevLine := b.seq.Line()
	seq, err := b.seq.Next(c.line)
	if err != nil {
		b.fail(err, c)
		return 0, false
	}

	b.stats.Sequences++
	if c.line != prevLine {
		b.stats.Lines++
	}
	if b.cfg.logger != nil {
		b.cfg.logger.Info("sequence issued", "op", c.op, "line", c.line, "seq", seq)
	}
	if b.cfg.observer != nil {
		b.cfg.observer.SequenceIssued(c.op, c.line, seq)
	}
	return seq, true
}

// fail records err as the sticky error, locating it at c when known.
func (b *Builder) fail(err error, c *call) {
	if b.err != nil {
		return
	}
	if se, ok := err.(*errors.Error); ok && c != nil && c.file != "" {
		se.WithLocation(c.file, c.srcLine, 0)
	}
	b.err = err

	if b.cfg.logger != nil {
		attrs := []any{"error", err}
		if c != nil {
			attrs = append(attrs, "op", c.op, "line", c.line)
		}
		b.cfg.logger.Warn("build failed", attrs...)
	}
	if b.cfg.observer != nil {
		b.cfg.observer.BuildFailed(err)
	}
}

func (b *Builder) push(kind BlockKind) {
	b.blocks = append(b.blocks, kind)
	if d := len(b.blocks); d > b.stats.MaxDepth {
		b.stats.MaxDepth = d
	}
	if b.cfg.observer != nil {
		b.cfg.observer.BlockOpened(kind, len(b.blocks))
	}
}

func (b *Builder) pop() (BlockKind, bool) {
	n := len(b.blocks)
	if n == 0 {
		return 0, false
	}
	kind := b.blocks[n-1]
	b.blocks = b.blocks[:n-1]
	if b.cfg.observer != nil {
		b.cfg.observer.BlockClosed(kind, len(b.blocks))
	}
	return kind, true
}
