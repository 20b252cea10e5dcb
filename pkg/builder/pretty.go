package builder

import "strings"

// indent writes one whitespace fragment when pretty printing is enabled:
// a newline (unless indentOnly) followed by the indent unit repeated for
// baseIndent + depth + depthOffset levels. The fragment consumes a sequence
// number on c's line.
func (b *Builder) indent(c *call, depthOffset int, indentOnly bool) bool {
	if !b.cfg.pretty {
		return true
	}
	seq, ok := b.next(c)
	if !ok {
		return false
	}

	levels := b.cfg.baseIndent + len(b.blocks) + depthOffset
	if levels < 0 {
		levels = 0
	}
	var sb strings.Builder
	if !indentOnly {
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(b.cfg.indentUnit, levels))
	b.sink.AddMarkupContent(seq, sb.String())
	return true
}
