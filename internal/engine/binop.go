package engine

import (
	"math"

	. "github.com/tsatke/luart/internal/engine/value"
)

type arithmetic struct {
	event string
	verb  string
	fn    func(left, right float64) float64
}

var (
	opAdd      = arithmetic{"__add", "perform arithmetic on", func(l, r float64) float64 { return l + r }}
	opSubtract = arithmetic{"__sub", "perform arithmetic on", func(l, r float64) float64 { return l - r }}
	opMultiply = arithmetic{"__mul", "perform arithmetic on", func(l, r float64) float64 { return l * r }}
	opDivide   = arithmetic{"__div", "perform arithmetic on", func(l, r float64) float64 { return l / r }}
	opModulo   = arithmetic{"__mod", "perform arithmetic on", modulo}
	opPower    = arithmetic{"__pow", "perform arithmetic on", math.Pow}
	opFloorDiv = arithmetic{"__idiv", "perform arithmetic on", func(l, r float64) float64 { return math.Floor(l / r) }}
)

// arith applies op natively if both operands are numbers or numeric strings,
// and falls back to the metamethod of the left, then the right operand.
func (e *Engine) arith(op arithmetic, left, right Value) (Value, error) {
	leftNum, leftOk := ToNumber(left)
	rightNum, rightOk := ToNumber(right)
	if leftOk && rightOk {
		return NewNumber(op.fn(leftNum, rightNum)), nil
	}

	result, ok, err := e.callMetaMethod(op.event, left, right)
	if err != nil {
		return nil, err
	}
	if ok {
		return result, nil
	}

	culprit := right
	if !leftOk {
		culprit = left
	}
	return nil, typeMismatch("attempt to %s a %s value", op.verb, typeOf(culprit))
}

func (e *Engine) Add(left, right Value) (Value, error) {
	return e.arith(opAdd, left, right)
}

func (e *Engine) Sub(left, right Value) (Value, error) {
	return e.arith(opSubtract, left, right)
}

func (e *Engine) Mul(left, right Value) (Value, error) {
	return e.arith(opMultiply, left, right)
}

func (e *Engine) Div(left, right Value) (Value, error) {
	return e.arith(opDivide, left, right)
}

// Mod is the floored modulo: the result has the sign of the divisor.
func (e *Engine) Mod(left, right Value) (Value, error) {
	return e.arith(opModulo, left, right)
}

func (e *Engine) Pow(left, right Value) (Value, error) {
	return e.arith(opPower, left, right)
}

func (e *Engine) FloorDiv(left, right Value) (Value, error) {
	return e.arith(opFloorDiv, left, right)
}

func modulo(left, right float64) float64 {
	m := math.Mod(left, right)
	if m != 0 && (m < 0) != (right < 0) {
		m += right
	}
	return m
}

// Concat joins the string forms of two strings or numbers. Any other operand
// requires a __concat metamethod.
func (e *Engine) Concat(left, right Value) (Value, error) {
	leftStr, leftOk := stringish(left)
	rightStr, rightOk := stringish(right)
	if leftOk && rightOk {
		return NewString(leftStr + rightStr), nil
	}

	result, ok, err := e.callMetaMethod("__concat", left, right)
	if err != nil {
		return nil, err
	}
	if ok {
		return result, nil
	}

	culprit := right
	if !leftOk {
		culprit = left
	}
	return nil, typeMismatch("attempt to concatenate a %s value", typeOf(culprit))
}

func (e *Engine) BAnd(left, right Value) (Value, error) {
	return e.bitwise("__band", left, right, func(left, right int64) int64 {
		return left & right
	})
}

func (e *Engine) BOr(left, right Value) (Value, error) {
	return e.bitwise("__bor", left, right, func(left, right int64) int64 {
		return left | right
	})
}

func (e *Engine) BXor(left, right Value) (Value, error) {
	return e.bitwise("__bxor", left, right, func(left, right int64) int64 {
		return left ^ right
	})
}

func (e *Engine) Shl(left, right Value) (Value, error) {
	return e.bitwise("__shl", left, right, shiftLeft)
}

func (e *Engine) Shr(left, right Value) (Value, error) {
	return e.bitwise("__shr", left, right, func(left, right int64) int64 {
		return shiftLeft(left, -right)
	})
}

// shiftLeft is a logical shift; negative displacements shift right.
func shiftLeft(left, right int64) int64 {
	switch {
	case right <= -64 || right >= 64:
		return 0
	case right < 0:
		return int64(uint64(left) >> uint64(-right))
	}
	return int64(uint64(left) << uint64(right))
}

func (e *Engine) bitwise(event string, left, right Value, operator func(left, right int64) int64) (Value, error) {
	leftVal, leftOk := ToInteger(left)
	rightVal, rightOk := ToInteger(right)
	if leftOk && rightOk {
		return NewNumber(float64(operator(leftVal, rightVal))), nil
	}

	result, ok, err := e.callMetaMethod(event, left, right)
	if err != nil {
		return nil, err
	}
	if ok {
		return result, nil
	}

	culprit := right
	if !leftOk {
		culprit = left
	}
	if _, isNum := ToNumber(culprit); isNum {
		return nil, typeMismatch("number has no integer representation")
	}
	return nil, typeMismatch("attempt to perform bitwise operation on a %s value", typeOf(culprit))
}
