package builder

import "github.com/vango-dev/seqtree/internal/errors"

// Sentinel errors, matched by code with errors.Is.
var (
	// ErrOutOfOrderLine reports a line lower than the last line seen.
	ErrOutOfOrderLine error = errors.Sentinel(errors.CodeOutOfOrderLine)

	// ErrLineOverflow reports more operations on one line than the
	// configured capacity.
	ErrLineOverflow error = errors.Sentinel(errors.CodeLineOverflow)

	// ErrUnbalancedClose reports a close without a matching open, or a
	// finish with blocks still open.
	ErrUnbalancedClose error = errors.Sentinel(errors.CodeUnbalancedClose)

	// ErrFinished reports an operation issued after Finish.
	ErrFinished error = errors.Sentinel(errors.CodeFinished)

	// ErrInvalidConfig reports an invalid option value.
	ErrInvalidConfig error = errors.Sentinel(errors.CodeInvalidConfig)
)
