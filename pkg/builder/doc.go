// Package builder provides a fluent, chainable facade over a render-tree
// sink.
//
// Every node written through a Builder receives a sequence number derived
// from the source line of the call that produced it:
//
//	seq = line * maxPerLine + ordinal-within-line
//
// so sequence numbers mirror the layout of the rendering code and stay
// stable across renders. Elements, components and regions are blocks: they
// are pushed on a stack when opened and popped by Close, which picks the
// matching sink close call. When pretty printing is enabled, the builder
// interleaves whitespace markup so the generated output is indented by
// nesting depth.
//
// # Usage
//
//	err := builder.Run(sink, func(b *builder.Builder) {
//	    b.Element("ul", builder.A("class", "todo")).
//	        Element("li").Text("write tests").Close().
//	        Element("li").Text("ship it").Close().
//	        Close()
//	}, builder.WithPrettyPrint(true))
//
// Run guarantees Finish is called, which fails if any block is left open.
//
// # Lines
//
// By default each operation reads its caller's line with runtime.Caller.
// Calls must therefore be issued in source order; a lower line than the
// previous one is an error. At pins an explicit line for the next operation,
// and LineCounter replaces source lines with a builder-owned counter.
//
// # Errors
//
// Builder methods return the builder for chaining, so failures are sticky:
// the first error stops all further output, is available from Err, and is
// returned by Finish and Run. Match errors with errors.Is against
// ErrOutOfOrderLine, ErrLineOverflow, ErrUnbalancedClose, ErrFinished and
// ErrInvalidConfig.
//
// A Builder is bound to one sink and one build pass and must not be used
// from more than one goroutine.
package builder
