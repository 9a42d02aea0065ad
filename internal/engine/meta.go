package engine

import (
	"github.com/tsatke/luart/internal/engine/value"
)

// metaTables holds the metatables shared by all values of a type that can't
// carry their own. Only strings have one.
type metaTables struct {
	StringMetaTable *value.Table
}

func (e *Engine) initMetatables() {
	e.metaTables.StringMetaTable = value.NewTable()
}

// metatable returns the metatable of the given object, or nil.
func (e *Engine) metatable(object value.Value) *value.Table {
	switch o := object.(type) {
	case *value.Table:
		return o.Metatable
	case *value.Userdata:
		return o.Metatable
	case value.String:
		return e.metaTables.StringMetaTable
	}
	return nil
}

// metaMethod returns the handler for event in the metatable of object.
// The result is Nil if there is no metatable or no such handler.
func (e *Engine) metaMethod(object value.Value, event string) value.Value {
	metaTable := e.metatable(object)
	if metaTable == nil {
		return value.Nil
	}
	return metaTable.Lookup(value.NewString(event))
}

// callMetaMethod invokes the handler for event on the first of the operands
// that has one. ok is false if none of them has a handler.
func (e *Engine) callMetaMethod(event string, operands ...value.Value) (result value.Value, ok bool, err error) {
	for _, operand := range operands {
		handler := e.metaMethod(operand, event)
		if value.IsNil(handler) {
			continue
		}
		results, err := e.Call(handler, operands...)
		if err != nil {
			return nil, true, err
		}
		return First(results), true, nil
	}
	return nil, false, nil
}
