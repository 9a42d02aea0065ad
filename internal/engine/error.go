package engine

import (
	"fmt"

	"github.com/tsatke/luart/internal/engine/value"
)

// Kind classifies a RuntimeError.
type Kind uint8

const (
	KindTypeMismatch Kind = iota + 1
	KindNotCallable
	KindUnsupportedMode
	KindReadFormat
)

func (k Kind) String() string {
	switch k {
	case KindTypeMismatch:
		return "type mismatch"
	case KindNotCallable:
		return "not callable"
	case KindUnsupportedMode:
		return "unsupported mode"
	case KindReadFormat:
		return "read format"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Sentinels to be used with errors.Is.
var (
	ErrTypeMismatch    = RuntimeError{Kind: KindTypeMismatch}
	ErrNotCallable     = RuntimeError{Kind: KindNotCallable}
	ErrUnsupportedMode = RuntimeError{Kind: KindUnsupportedMode}
	ErrReadFormat      = RuntimeError{Kind: KindReadFormat}
)

// RuntimeError is a failure raised by the runtime itself, as opposed to an
// Error raised by translated code.
type RuntimeError struct {
	Kind Kind
	Msg  string
}

func (e RuntimeError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

// Is matches sentinels (a RuntimeError without a message) by kind.
func (e RuntimeError) Is(target error) bool {
	t, ok := target.(RuntimeError)
	return ok && t.Msg == "" && t.Kind == e.Kind
}

func typeMismatch(format string, args ...interface{}) error {
	return RuntimeError{Kind: KindTypeMismatch, Msg: fmt.Sprintf(format, args...)}
}

func notCallable(val value.Value) error {
	return RuntimeError{Kind: KindNotCallable, Msg: fmt.Sprintf("attempt to call a %s value", typeOf(val))}
}

func badArgument(n int, fn, msg string) error {
	return typeMismatch("bad argument #%d to '%s' (%s)", n, fn, msg)
}

// Error is raised by the error function. It carries an arbitrary value as
// payload, and the call stack at the time it was raised.
type Error struct {
	Value value.Value
	Stack []StackFrame
}

func (e Error) Error() string {
	if e.Value == nil {
		return "error called with <nil>"
	}
	return ToString(e.Value)
}
