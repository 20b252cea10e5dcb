package builder

// Stats summarizes a finished build pass.
type Stats struct {
	Operations int // public operations issued
	Sequences  int // sequence numbers issued
	Lines      int // distinct lines seen
	MaxDepth   int // deepest block nesting reached
}

// Observer receives builder events. Implementations must be cheap; they run
// inline on every operation.
type Observer interface {
	SequenceIssued(op string, line, seq int)
	BlockOpened(kind BlockKind, depth int)
	BlockClosed(kind BlockKind, depth int)
	BuildFailed(err error)
	BuildFinished(stats Stats)
}
