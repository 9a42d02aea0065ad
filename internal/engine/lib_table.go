package engine

import (
	"strings"

	. "github.com/tsatke/luart/internal/engine/value"
)

func (e *Engine) tableLibrary() *Table {
	return library(
		libFunc{"concat", e.tableConcat},
		libFunc{"insert", e.tableInsert},
		libFunc{"pack", e.tablePack},
		libFunc{"remove", e.tableRemove},
		libFunc{"unpack", e.tableUnpack},
	)
}

// tableConcat joins t[i..j] with sep. By default, that is the whole array
// part of t.
func (e *Engine) tableConcat(args ...Value) ([]Value, error) {
	t, err := checkTable("concat", args, 0)
	if err != nil {
		return nil, err
	}
	sep, err := optString("concat", args, 1, "")
	if err != nil {
		return nil, err
	}
	i, err := optInteger("concat", args, 2, 1)
	if err != nil {
		return nil, err
	}
	j, err := optInteger("concat", args, 3, int64(t.Length()))
	if err != nil {
		return nil, err
	}

	var parts []string
	for k := i; k <= j; k++ {
		s, ok := stringish(t.Lookup(NewNumber(float64(k))))
		if !ok {
			return nil, typeMismatch("invalid value (at index %d) in table for 'concat'", k)
		}
		parts = append(parts, s)
	}
	return values(NewString(strings.Join(parts, sep))), nil
}

// tableUnpack returns t[i..j] as a result sequence, by default the whole
// array part.
func (e *Engine) tableUnpack(args ...Value) ([]Value, error) {
	t, err := checkTable("unpack", args, 0)
	if err != nil {
		return nil, err
	}
	i, err := optInteger("unpack", args, 1, 1)
	if err != nil {
		return nil, err
	}
	j, err := optInteger("unpack", args, 2, int64(t.Length()))
	if err != nil {
		return nil, err
	}
	if i > j {
		return values(), nil
	}
	if j-i >= 1<<24 {
		return nil, typeMismatch("too many results to unpack")
	}

	results := make([]Value, 0, j-i+1)
	for k := i; k <= j; k++ {
		results = append(results, t.Lookup(NewNumber(float64(k))))
	}
	return results, nil
}

func (e *Engine) tablePack(args ...Value) ([]Value, error) {
	t := NewArray(args...)
	t.Set(NewString("n"), NewNumber(float64(len(args))))
	return values(t), nil
}

// tableInsert appends a value, or inserts it at a position and shifts the
// following elements up.
func (e *Engine) tableInsert(args ...Value) ([]Value, error) {
	t, err := checkTable("insert", args, 0)
	if err != nil {
		return nil, err
	}
	n := int64(t.Length())
	switch len(args) {
	case 2:
		t.Set(NewNumber(float64(n+1)), args[1])
	case 3:
		pos, err := checkInteger("insert", args, 1)
		if err != nil {
			return nil, err
		}
		if pos < 1 || pos > n+1 {
			return nil, badArgument(2, "insert", "position out of bounds")
		}
		for k := n; k >= pos; k-- {
			t.Set(NewNumber(float64(k+1)), t.Lookup(NewNumber(float64(k))))
		}
		t.Set(NewNumber(float64(pos)), args[2])
	default:
		return nil, typeMismatch("wrong number of arguments to 'insert'")
	}
	return values(), nil
}

// tableRemove removes the element at pos (default: the last one), shifts
// the following elements down and returns the removed value.
func (e *Engine) tableRemove(args ...Value) ([]Value, error) {
	t, err := checkTable("remove", args, 0)
	if err != nil {
		return nil, err
	}
	n := int64(t.Length())
	pos, err := optInteger("remove", args, 1, n)
	if err != nil {
		return nil, err
	}
	if pos != n && (pos < 1 || pos > n+1) {
		return nil, badArgument(2, "remove", "position out of bounds")
	}

	removed := t.Lookup(NewNumber(float64(pos)))
	for k := pos; k < n; k++ {
		t.Set(NewNumber(float64(k)), t.Lookup(NewNumber(float64(k+1))))
	}
	if pos <= n {
		t.Set(NewNumber(float64(n)), Nil)
	}
	return values(removed), nil
}
