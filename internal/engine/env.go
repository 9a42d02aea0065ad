package engine

import (
	. "github.com/tsatke/luart/internal/engine/value"
)

const version = "Lua 5.3"

type libFunc struct {
	name string
	fn   LuaFn
}

func library(fns ...libFunc) *Table {
	lib := NewTable()
	for _, f := range fns {
		lib.Set(NewString(f.name), NewFunction(f.name, f.fn))
	}
	return lib
}

// buildEnvironment populates a fresh global table. Nothing in it is shared
// with any other engine.
func (e *Engine) buildEnvironment() {
	e._G = NewTable()
	register := func(fn *Function) {
		e._G.Set(NewString(fn.Name), fn)
	}

	e.SetGlobal("_G", e._G)
	e.SetGlobal("_VERSION", NewString(version))
	e.SetGlobal("arg", e.argTable())

	for _, f := range e.baseLibrary() {
		register(NewFunction(f.name, f.fn))
	}

	stringLib := e.stringLibrary()
	e.metaTables.StringMetaTable.Set(NewString("__index"), stringLib)
	e.SetGlobal("string", stringLib)
	e.SetGlobal("table", e.tableLibrary())
	e.SetGlobal("math", e.mathLibrary())
	e.SetGlobal("io", e.ioLibrary())
	e.SetGlobal("host", e.hostLibrary())
}

// argTable maps argv[i] to arg[i-1]: arg[0] is the first token after the
// invocation token, which itself ends up at arg[-1].
func (e *Engine) argTable() *Table {
	arg := NewTable()
	for i, token := range e.argv {
		arg.Set(NewNumber(float64(i-1)), NewString(token))
	}
	return arg
}
