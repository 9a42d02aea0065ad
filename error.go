package lua

import "github.com/tsatke/luart/internal/engine"

type (
	// Error is raised by the error function of translated code. Its Value
	// is the error object; Stack holds the active calls, innermost first.
	Error = engine.Error
	// RuntimeError is raised by the runtime itself.
	RuntimeError = engine.RuntimeError
	StackFrame   = engine.StackFrame
)

// Sentinels for errors.Is.
var (
	ErrTypeMismatch    = engine.ErrTypeMismatch
	ErrNotCallable     = engine.ErrNotCallable
	ErrUnsupportedMode = engine.ErrUnsupportedMode
	ErrReadFormat      = engine.ErrReadFormat
)
