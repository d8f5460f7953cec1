package ops

import "errors"

// Operator failure classes. Construction failures wrap
// ErrUnsupportedConfig or ErrInvalidArg; per-run precondition failures
// wrap ErrBadShape. Kernel execution errors propagate unwrapped from
// the kernels package. All failures abort the construction or the
// single invocation; nothing is retried and no fallback path exists.
var (
	ErrUnsupportedConfig = errors.New("ops: unsupported configuration")
	ErrInvalidArg        = errors.New("ops: invalid argument")
	ErrBadShape          = errors.New("ops: shape precondition violated")
)
