package engine

import (
	. "github.com/tsatke/luart/internal/engine/value"
)

// maxIndexChain bounds how many __index tables are followed for one lookup.
const maxIndexChain = 100

// Index reads object[key]. Tables are read raw first; only on a miss is the
// __index metamethod consulted. If it is a function, it is called with
// (object, key), otherwise the lookup is repeated on it.
func (e *Engine) Index(object, key Value) (Value, error) {
	for loop := 0; loop < maxIndexChain; loop++ {
		if tbl, ok := object.(*Table); ok {
			if val, found := tbl.Get(key); found {
				return val, nil
			}
		}

		handler := e.metaMethod(object, "__index")
		if IsNil(handler) {
			if _, ok := object.(*Table); ok {
				return Nil, nil
			}
			return nil, typeMismatch("attempt to index a %s value", typeOf(object))
		}
		if _, ok := handler.(*Function); ok {
			results, err := e.Call(handler, object, key)
			if err != nil {
				return nil, err
			}
			return First(results), nil
		}
		object = handler
	}
	return nil, typeMismatch("'__index' chain too long; possible loop")
}

// SetIndex performs object[key] = val. It is always a raw store.
func (e *Engine) SetIndex(object, key, val Value) error {
	tbl, ok := object.(*Table)
	if !ok {
		return typeMismatch("attempt to index a %s value", typeOf(object))
	}
	if !ValidKey(key) {
		if IsNil(key) {
			return typeMismatch("table index is nil")
		}
		return typeMismatch("table index is NaN")
	}
	tbl.Set(key, val)
	return nil
}
