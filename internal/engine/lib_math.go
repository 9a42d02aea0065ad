package engine

import (
	"math"

	. "github.com/tsatke/luart/internal/engine/value"
)

func (e *Engine) mathLibrary() *Table {
	lib := library(
		unary("abs", math.Abs),
		unary("acos", math.Acos),
		unary("asin", math.Asin),
		libFunc{"atan", e.mathAtan},
		binary("atan2", math.Atan2),
		unary("ceil", math.Ceil),
		unary("cos", math.Cos),
		unary("cosh", math.Cosh),
		unary("deg", func(x float64) float64 { return x * 180 / math.Pi }),
		unary("exp", math.Exp),
		unary("floor", math.Floor),
		binary("fmod", math.Mod),
		libFunc{"log", e.mathLog},
		unary("log10", math.Log10),
		libFunc{"max", e.mathMax},
		libFunc{"min", e.mathMin},
		libFunc{"modf", e.mathModf},
		binary("pow", math.Pow),
		unary("rad", func(x float64) float64 { return x * math.Pi / 180 }),
		libFunc{"random", e.mathRandom},
		libFunc{"randomseed", e.mathRandomseed},
		unary("sin", math.Sin),
		unary("sinh", math.Sinh),
		unary("sqrt", math.Sqrt),
		unary("tan", math.Tan),
		unary("tanh", math.Tanh),
	)
	lib.Set(NewString("pi"), NewNumber(math.Pi))
	lib.Set(NewString("huge"), NewNumber(math.Inf(1)))
	return lib
}

// unary forwards to a host numeric primitive.
func unary(name string, fn func(float64) float64) libFunc {
	return libFunc{name, func(args ...Value) ([]Value, error) {
		x, err := checkNumber(name, args, 0)
		if err != nil {
			return nil, err
		}
		return values(NewNumber(fn(x))), nil
	}}
}

func binary(name string, fn func(float64, float64) float64) libFunc {
	return libFunc{name, func(args ...Value) ([]Value, error) {
		x, err := checkNumber(name, args, 0)
		if err != nil {
			return nil, err
		}
		y, err := checkNumber(name, args, 1)
		if err != nil {
			return nil, err
		}
		return values(NewNumber(fn(x, y))), nil
	}}
}

func (e *Engine) mathAtan(args ...Value) ([]Value, error) {
	y, err := checkNumber("atan", args, 0)
	if err != nil {
		return nil, err
	}
	x, err := optNumber("atan", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return values(NewNumber(math.Atan2(y, x))), nil
}

func (e *Engine) mathLog(args ...Value) ([]Value, error) {
	x, err := checkNumber("log", args, 0)
	if err != nil {
		return nil, err
	}
	if IsNil(arg(args, 1)) {
		return values(NewNumber(math.Log(x))), nil
	}
	base, err := checkNumber("log", args, 1)
	if err != nil {
		return nil, err
	}
	switch base {
	case 2:
		return values(NewNumber(math.Log2(x))), nil
	case 10:
		return values(NewNumber(math.Log10(x))), nil
	}
	return values(NewNumber(math.Log(x) / math.Log(base))), nil
}

func (e *Engine) mathMax(args ...Value) ([]Value, error) {
	return e.extremum("max", args, func(candidate, best float64) bool { return candidate > best })
}

func (e *Engine) mathMin(args ...Value) ([]Value, error) {
	return e.extremum("min", args, func(candidate, best float64) bool { return candidate < best })
}

func (e *Engine) extremum(name string, args []Value, better func(candidate, best float64) bool) ([]Value, error) {
	best, err := checkNumber(name, args, 0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i++ {
		x, err := checkNumber(name, args, i)
		if err != nil {
			return nil, err
		}
		if better(x, best) {
			best = x
		}
	}
	return values(NewNumber(best)), nil
}

func (e *Engine) mathModf(args ...Value) ([]Value, error) {
	x, err := checkNumber("modf", args, 0)
	if err != nil {
		return nil, err
	}
	if math.IsInf(x, 0) {
		return values(NewNumber(x), NewNumber(0)), nil
	}
	integral, frac := math.Modf(x)
	return values(NewNumber(integral), NewNumber(frac)), nil
}

// mathRandom returns a float in [0,1) without arguments, an integer in
// [1,n] for random(n) and an integer in [lo,hi] for random(lo, hi).
func (e *Engine) mathRandom(args ...Value) ([]Value, error) {
	r := e.rand.Float64()
	var lo, hi int64
	switch len(args) {
	case 0:
		return values(NewNumber(r)), nil
	case 1:
		n, err := checkInteger("random", args, 0)
		if err != nil {
			return nil, err
		}
		lo, hi = 1, n
	case 2:
		var err error
		if lo, err = checkInteger("random", args, 0); err != nil {
			return nil, err
		}
		if hi, err = checkInteger("random", args, 1); err != nil {
			return nil, err
		}
	default:
		return nil, typeMismatch("wrong number of arguments to 'random'")
	}
	if lo > hi {
		return nil, badArgument(len(args), "random", "interval is empty")
	}
	return values(NewNumber(float64(lo) + math.Floor(r*float64(hi-lo+1)))), nil
}

func (e *Engine) mathRandomseed(args ...Value) ([]Value, error) {
	seed, err := checkNumber("randomseed", args, 0)
	if err != nil {
		return nil, err
	}
	e.rand.Seed(int64(seed))
	return values(), nil
}
