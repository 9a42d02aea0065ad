package lua

import "github.com/tsatke/luart/internal/engine/value"

type (
	Value    = value.Value
	Type     = value.Type
	Boolean  = value.Boolean
	Number   = value.Number
	String   = value.String
	Table    = value.Table
	Function = value.Function
	Userdata = value.Userdata
	// GoFunction is the shape of every callable.
	GoFunction = value.LuaFn
)

const (
	Nil   = value.Nil
	False = value.False
	True  = value.True
)

var (
	NewString   = value.NewString
	NewNumber   = value.NewNumber
	NewTable    = value.NewTable
	NewArray    = value.NewArray
	NewFunction = value.NewFunction
	NewUserdata = value.NewUserdata
	IsNil       = value.IsNil
)

// Values is a result sequence.
type Values []Value

func (v Values) Count() int {
	return len(v)
}

// Get returns the value at the given index, or Nil if the sequence is too
// short.
func (v Values) Get(index int) Value {
	if index < 0 || index >= len(v) {
		return Nil
	}
	return v[index]
}

// First returns the first value, or Nil if the sequence is empty.
func (v Values) First() Value {
	return v.Get(0)
}
