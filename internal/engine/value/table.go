package value

import "math"

// Table is the only composite type. It is a single associative mapping from
// keys to values; the array part is simply the run of keys 1, 2, 3, ...
// A table may carry a metatable, which holds handlers for operators the
// default semantics don't cover.
type Table struct {
	Metatable *Table

	fields map[Value]Value
	// keys records every key in insertion order, so that Next can walk the
	// table deterministically. Keys whose value was removed stay in here
	// until the next compaction, which lets a traversal clear fields it has
	// already visited.
	keys []Value
	slot map[Value]int
}

func NewTable() *Table {
	return &Table{
		fields: make(map[Value]Value),
		slot:   make(map[Value]int),
	}
}

// NewArray creates a table whose array part holds the given values.
func NewArray(vals ...Value) *Table {
	t := NewTable()
	for i, v := range vals {
		t.Set(Number(i+1), v)
	}
	return t
}

func (*Table) Type() Type { return TypeTable }

// Set stores value under key. Storing Nil removes the key.
func (t *Table) Set(key Value, value Value) {
	if IsNil(value) {
		delete(t.fields, key)
		return
	}
	if _, ok := t.slot[key]; !ok {
		if len(t.keys) > 2*len(t.fields)+8 {
			t.compact()
		}
		t.slot[key] = len(t.keys)
		t.keys = append(t.keys, key)
	}
	t.fields[key] = value
}

func (t *Table) Get(key Value) (Value, bool) {
	val, ok := t.fields[key]
	return val, ok
}

// Lookup is like Get, but yields Nil for absent keys.
func (t *Table) Lookup(key Value) Value {
	if val, ok := t.fields[key]; ok {
		return val
	}
	return Nil
}

// Length returns the size of the array part: the last index n such that
// keys 1..n are all present.
func (t *Table) Length() int {
	n := 0
	for {
		if _, ok := t.fields[Number(n+1)]; !ok {
			return n
		}
		n++
	}
}

// Count returns the number of present keys.
func (t *Table) Count() int {
	return len(t.fields)
}

// Next returns the key that follows key in traversal order, and its value.
// Next(Nil) starts a traversal. When the traversal is done, ok is true and
// the returned key is Nil. ok is false if key is not part of the table.
func (t *Table) Next(key Value) (next, val Value, ok bool) {
	start := 0
	if !IsNil(key) {
		i, found := t.slot[key]
		if !found {
			return Nil, Nil, false
		}
		start = i + 1
	}
	for i := start; i < len(t.keys); i++ {
		k := t.keys[i]
		if v, present := t.fields[k]; present {
			return k, v, true
		}
	}
	return Nil, Nil, true
}

func (t *Table) compact() {
	keys := make([]Value, 0, len(t.fields))
	slot := make(map[Value]int, len(t.fields))
	for _, k := range t.keys {
		if _, ok := t.fields[k]; ok {
			slot[k] = len(keys)
			keys = append(keys, k)
		}
	}
	t.keys = keys
	t.slot = slot
}

// ValidKey reports whether key may be used to store a value.
func ValidKey(key Value) bool {
	if IsNil(key) {
		return false
	}
	if n, ok := key.(Number); ok && math.IsNaN(float64(n)) {
		return false
	}
	return true
}
