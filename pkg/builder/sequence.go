package builder

import (
	"github.com/vango-dev/seqtree/internal/errors"
)

// DefaultMaxPerLine is the default per-line operation capacity.
const DefaultMaxPerLine = 1000

// Sequencer maps source lines to strictly increasing sequence numbers.
// Each line owns the range [line*maxPerLine, (line+1)*maxPerLine).
type Sequencer struct {
	maxPerLine int
	line       int
	seq        int
}

// NewSequencer creates a Sequencer with the given per-line capacity.
func NewSequencer(maxPerLine int) (*Sequencer, error) {
	if maxPerLine <= 0 {
		return nil, errors.New(errors.CodeInvalidConfig).
			WithDetailf("max operations per line must be positive, got %d", maxPerLine)
	}
	return &Sequencer{maxPerLine: maxPerLine, line: -1, seq: -1}, nil
}

// Next returns the sequence number for the next operation attributed to
// line. Lines must be non-decreasing. On error the state is unchanged.
func (s *Sequencer) Next(line int) (int, error) {
	switch {
	case line < 0 || line < s.line:
		return 0, errors.New(errors.CodeOutOfOrderLine).
			WithDetailf("line %d after line %d", line, s.line)
	case line > s.line:
		s.line = line
		s.seq = line * s.maxPerLine
		return s.seq, nil
	}

	next := s.seq + 1
	if next >= (line+1)*s.maxPerLine {
		return 0, errors.New(errors.CodeLineOverflow).
			WithDetailf("line %d already has %d operations", line, s.maxPerLine)
	}
	s.seq = next
	return next, nil
}

// Line returns the last line a sequence number was issued for, or -1.
func (s *Sequencer) Line() int { return s.line }

// Last returns the last sequence number issued, or -1.
func (s *Sequencer) Last() int { return s.seq }

// MaxPerLine returns the per-line capacity.
func (s *Sequencer) MaxPerLine() int { return s.maxPerLine }
