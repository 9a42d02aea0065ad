package engine

import (
	. "github.com/tsatke/luart/internal/engine/value"
)

// Unm negates a number or numeric string, or defers to __unm.
func (e *Engine) Unm(val Value) (Value, error) {
	if num, ok := ToNumber(val); ok {
		return NewNumber(-num), nil
	}

	result, ok, err := e.callMetaMethod("__unm", val, val)
	if err != nil {
		return nil, err
	}
	if ok {
		return result, nil
	}
	return nil, typeMismatch("attempt to perform arithmetic on a %s value", typeOf(val))
}

// Len is the length operator. A __len metamethod takes precedence; otherwise
// strings yield their byte count and tables the size of their array part.
func (e *Engine) Len(val Value) (Value, error) {
	if str, ok := val.(String); ok {
		return NewNumber(float64(len(str))), nil
	}

	// not a string, attempt metamethod
	result, ok, err := e.callMetaMethod("__len", val, val)
	if err != nil {
		return nil, err
	}
	if ok {
		return result, nil
	}

	// no metamethod, check if it's a table
	if tbl, ok := val.(*Table); ok {
		return NewNumber(float64(tbl.Length())), nil
	}

	return nil, typeMismatch("attempt to get length of a %s value", typeOf(val))
}

func (e *Engine) BNot(val Value) (Value, error) {
	if i, ok := ToInteger(val); ok {
		return NewNumber(float64(^i)), nil
	}

	result, ok, err := e.callMetaMethod("__bnot", val, val)
	if err != nil {
		return nil, err
	}
	if ok {
		return result, nil
	}
	if _, isNum := ToNumber(val); isNum {
		return nil, typeMismatch("number has no integer representation")
	}
	return nil, typeMismatch("attempt to perform bitwise operation on a %s value", typeOf(val))
}

// Not is the logical negation, following ToBoolean.
func Not(val Value) Value {
	return Boolean(!ToBoolean(val))
}

func typeOf(val Value) Type {
	if val == nil {
		return TypeNil
	}
	return val.Type()
}
