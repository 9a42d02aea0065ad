package engine

import (
	"fmt"
	"math"

	. "github.com/tsatke/luart/internal/engine/value"
)

// arg returns the i-th (0-based) argument, or Nil if there is none.
func arg(args []Value, i int) Value {
	if i < len(args) && args[i] != nil {
		return args[i]
	}
	return Nil
}

// argTypeName names the type of the i-th argument for error messages.
func argTypeName(args []Value, i int) string {
	if i >= len(args) {
		return "no value"
	}
	return typeOf(args[i]).String()
}

func checkAny(fn string, args []Value, i int) (Value, error) {
	if i >= len(args) {
		return nil, badArgument(i+1, fn, "value expected")
	}
	return arg(args, i), nil
}

func checkString(fn string, args []Value, i int) (string, error) {
	val := arg(args, i)
	if s, ok := stringish(val); ok {
		return s, nil
	}
	return "", badArgument(i+1, fn, fmt.Sprintf("string expected, got %s", argTypeName(args, i)))
}

func optString(fn string, args []Value, i int, def string) (string, error) {
	if IsNil(arg(args, i)) {
		return def, nil
	}
	return checkString(fn, args, i)
}

func checkNumber(fn string, args []Value, i int) (float64, error) {
	val := arg(args, i)
	if f, ok := ToNumber(val); ok {
		return f, nil
	}
	return 0, badArgument(i+1, fn, fmt.Sprintf("number expected, got %s", argTypeName(args, i)))
}

func optNumber(fn string, args []Value, i int, def float64) (float64, error) {
	if IsNil(arg(args, i)) {
		return def, nil
	}
	return checkNumber(fn, args, i)
}

func checkInteger(fn string, args []Value, i int) (int64, error) {
	f, err := checkNumber(fn, args, i)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || !fitsInteger(f) {
		return 0, badArgument(i+1, fn, "number has no integer representation")
	}
	return int64(f), nil
}

// fitsInteger reports whether f converts to an int64 without overflow.
// Fractions are truncated.
func fitsInteger(f float64) bool {
	return f >= -(1<<63) && f < 1<<63
}

func optInteger(fn string, args []Value, i int, def int64) (int64, error) {
	if IsNil(arg(args, i)) {
		return def, nil
	}
	return checkInteger(fn, args, i)
}

func checkTable(fn string, args []Value, i int) (*Table, error) {
	val := arg(args, i)
	if t, ok := val.(*Table); ok {
		return t, nil
	}
	return nil, badArgument(i+1, fn, fmt.Sprintf("table expected, got %s", argTypeName(args, i)))
}
