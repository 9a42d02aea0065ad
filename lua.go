// Package lua is the runtime support library for programs that were
// translated from Lua into Go. Translated code runs as a Chunk inside an
// Engine, and performs every dynamic operation (arithmetic, indexing,
// calls) through the engine's methods.
//
//	results, err := lua.Run(func(e *lua.Engine, args ...lua.Value) ([]lua.Value, error) {
//		print, err := e.Global("print")
//		if err != nil {
//			return nil, err
//		}
//		return e.Call(print, lua.NewString("Hello, World!"))
//	})
package lua

import (
	"github.com/tsatke/luart/internal/engine"
)

type (
	// Engine is one execution environment. Engines share nothing.
	Engine = engine.Engine
	// Chunk is a translated top-level unit.
	Chunk = engine.Chunk
	// Clock supplies timestamps to an Engine.
	Clock = engine.Clock
	// HostBridge exposes host specifics to translated code.
	HostBridge = engine.HostBridge
)

// NewEngine creates a new Engine and applies all given options. Unless
// WithHost is given, the engine's host bridge exposes the Go process.
func NewEngine(opts ...Option) *Engine {
	return engine.New(append([]Option{engine.WithHostFactory(newHost)}, opts...)...)
}

// Run runs chunk in a new Engine and returns the chunk's results.
func Run(chunk Chunk, opts ...Option) (Values, error) {
	results, err := NewEngine(opts...).Run(chunk)
	if err != nil {
		return nil, err
	}
	return Values(results), nil
}

// First, Args and Params implement the rules for result sequences: only
// the last expression of a list expands to all of its values.
var (
	First  = engine.First
	Args   = engine.Args
	Params = engine.Params
)

// And and Or evaluate their right operand only when needed.
var (
	And = engine.And
	Or  = engine.Or
	Not = engine.Not
)

var (
	ToBoolean = engine.ToBoolean
	ToNumber  = engine.ToNumber
	ToInteger = engine.ToInteger
	ToString  = engine.ToString
	RawEqual  = engine.RawEqual
)
