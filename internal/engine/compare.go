package engine

import (
	. "github.com/tsatke/luart/internal/engine/value"
)

// RawEqual compares without consulting metatables. Numbers, strings and
// booleans compare by value, everything else by identity.
func RawEqual(left, right Value) bool {
	if IsNil(left) || IsNil(right) {
		return IsNil(left) && IsNil(right)
	}
	return left == right
}

// Eq is the equality operator. An __eq metamethod is only consulted if both
// operands are tables (or both are userdata) and they are not the same
// object.
func (e *Engine) Eq(left, right Value) (bool, error) {
	if RawEqual(left, right) {
		return true, nil
	}

	switch left.(type) {
	case *Table:
		if _, ok := right.(*Table); !ok {
			return false, nil
		}
	case *Userdata:
		if _, ok := right.(*Userdata); !ok {
			return false, nil
		}
	default:
		return false, nil
	}

	result, ok, err := e.callMetaMethod("__eq", left, right)
	if err != nil || !ok {
		return false, err
	}
	return ToBoolean(result), nil
}

// Ne is the negation of Eq.
func (e *Engine) Ne(left, right Value) (bool, error) {
	eq, err := e.Eq(left, right)
	return !eq, err
}

func (e *Engine) Lt(left, right Value) (bool, error) {
	switch l := left.(type) {
	case Number:
		if r, ok := right.(Number); ok {
			return l < r, nil
		}
	case String:
		if r, ok := right.(String); ok {
			return l < r, nil
		}
	}

	result, ok, err := e.callMetaMethod("__lt", left, right)
	if err != nil {
		return false, err
	}
	if ok {
		return ToBoolean(result), nil
	}
	return false, compareError(left, right)
}

func (e *Engine) Le(left, right Value) (bool, error) {
	switch l := left.(type) {
	case Number:
		if r, ok := right.(Number); ok {
			return l <= r, nil
		}
	case String:
		if r, ok := right.(String); ok {
			return l <= r, nil
		}
	}

	result, ok, err := e.callMetaMethod("__le", left, right)
	if err != nil {
		return false, err
	}
	if ok {
		return ToBoolean(result), nil
	}

	// a <= b is not (b < a)
	result, ok, err = e.callMetaMethod("__lt", right, left)
	if err != nil {
		return false, err
	}
	if ok {
		return !ToBoolean(result), nil
	}
	return false, compareError(left, right)
}

// Gt is Lt with swapped operands.
func (e *Engine) Gt(left, right Value) (bool, error) {
	return e.Lt(right, left)
}

// Ge is Le with swapped operands.
func (e *Engine) Ge(left, right Value) (bool, error) {
	return e.Le(right, left)
}

func compareError(left, right Value) error {
	l, r := typeOf(left), typeOf(right)
	if l == r {
		return typeMismatch("attempt to compare two %s values", l)
	}
	return typeMismatch("attempt to compare %s with %s", l, r)
}
