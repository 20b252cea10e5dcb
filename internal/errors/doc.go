// Package errors provides structured, actionable error values for seqtree.
//
// Every error raised by the builder, the recorder sink, the script runner and
// the CLI is an *Error carrying:
//   - A stable code (e.g., "ST002") that callers can match with errors.Is
//   - The source location of the offending builder call, when known
//   - A plain-language detail and a hint on how to fix it
//
// # Error Categories
//
//   - build: builder misuse (out-of-order lines, line overflow, unbalanced blocks)
//   - sink: malformed frame streams reported by the recorder or renderer
//   - config: seqtree.json loading and validation
//   - script: build script parsing and execution
//   - publish: preview server and storage upload failures
//
// # Usage
//
//	err := errors.New(errors.CodeLineOverflow).
//	    WithLocation("card.go", 42, 0).
//	    WithSuggestion("Raise max-per-line or split the call across lines")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR ST002: Too many operations on one source line
//	//
//	//   card.go:42
//	//
//	//   Hint: Raise max-per-line or split the call across lines
package errors
