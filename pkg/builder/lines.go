package builder

import "runtime"

// LineMode selects how operations are attributed to lines.
type LineMode uint8

const (
	// LineCaller attributes each operation to its caller's source line.
	LineCaller LineMode = iota

	// LineCounter attributes each operation to the next value of a
	// builder-owned counter, independent of source position.
	LineCounter
)

// String returns the string representation of the LineMode.
func (m LineMode) String() string {
	switch m {
	case LineCaller:
		return "caller"
	case LineCounter:
		return "counter"
	default:
		return "unknown"
	}
}

// ParseLineMode parses "caller" or "counter". The empty string is LineCaller.
func ParseLineMode(s string) (LineMode, bool) {
	switch s {
	case "", "caller":
		return LineCaller, true
	case "counter":
		return LineCounter, true
	default:
		return 0, false
	}
}

// call describes one public operation in flight.
type call struct {
	op   string
	line int // line used for sequencing

	// file and srcLine locate the caller for error reports, when known.
	file    string
	srcLine int
}

// begin resolves the line for a public operation. It must be called
// directly from the exported method so that skip=2 lands on user code.
func (b *Builder) begin(op string) (*call, bool) {
	c := &call{op: op}

	if b.cfg.lineMode == LineCaller {
		if _, file, line, ok := runtime.Caller(2); ok {
			c.file, c.srcLine = file, line
			c.line = line
		}
	}

	switch {
	case b.pinned:
		c.line = b.pinnedLine
		b.pinned = false
		if b.cfg.lineMode == LineCounter {
			b.counter = c.line
		}
	case b.cfg.lineMode == LineCounter:
		b.counter++
		c.line = b.counter
	}

	if !b.usable(c) {
		return c, false
	}
	b.stats.Operations++
	return c, true
}
