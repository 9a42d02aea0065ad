package engine

import (
	"fmt"

	. "github.com/tsatke/luart/internal/engine/value"
)

// Call invokes fn with the given arguments and returns all of its results.
// Tables and userdata are callable through a __call metamethod, which
// receives the object as first argument. The returned slice is never nil.
func (e *Engine) Call(fn Value, args ...Value) ([]Value, error) {
	callable, ok := fn.(*Function)
	if !ok {
		handler := e.metaMethod(fn, "__call")
		callable, ok = handler.(*Function)
		if !ok {
			return nil, notCallable(fn)
		}
		args = append([]Value{fn}, args...)
	}

	if ok := e.stack.Push(StackFrame{
		Name: callable.Name,
	}); !ok {
		e.log.Debug("stack overflow", "function", callable.Name, "depth", e.maxStackSize)
		return nil, fmt.Errorf("stack overflow while calling '%s'", callable.Name)
	}
	defer e.stack.Pop()

	results, err := callable.Callable(args...)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []Value{}
	}
	return results, nil
}

// Apply is a method call: obj:method(args...). The method is looked up with
// Index, and obj is passed as its first argument.
func (e *Engine) Apply(obj Value, method string, args ...Value) ([]Value, error) {
	fn, err := e.Index(obj, NewString(method))
	if err != nil {
		return nil, err
	}
	if _, ok := fn.(*Function); !ok && IsNil(e.metaMethod(fn, "__call")) {
		return nil, RuntimeError{
			Kind: KindNotCallable,
			Msg:  fmt.Sprintf("attempt to call a %s value (method '%s')", typeOf(fn), method),
		}
	}
	return e.Call(fn, append([]Value{obj}, args...)...)
}

// First returns the first value of a result sequence, or Nil if it is empty.
// This is how a call is used in a single value context.
func First(results []Value) Value {
	if len(results) == 0 || results[0] == nil {
		return Nil
	}
	return results[0]
}

// Args builds an argument list from the results of the argument
// expressions. Every expression but the last contributes exactly its first
// value; the last one contributes all of its values.
//
//	f(g(), h()) // Args(g(), h()) -> first of g, then all of h
func Args(exprs ...[]Value) []Value {
	if len(exprs) == 0 {
		return []Value{}
	}
	last := exprs[len(exprs)-1]
	args := make([]Value, 0, len(exprs)-1+len(last))
	for _, expr := range exprs[:len(exprs)-1] {
		args = append(args, First(expr))
	}
	return append(args, last...)
}

// Params binds the arguments of a call to n declared parameters. Missing
// parameters are Nil; surplus arguments are returned as varargs.
func Params(args []Value, n int) (params, varargs []Value) {
	params = make([]Value, n)
	for i := range params {
		if i < len(args) {
			params[i] = args[i]
		} else {
			params[i] = Nil
		}
	}
	if len(args) > n {
		varargs = args[n:]
	} else {
		varargs = []Value{}
	}
	return params, varargs
}

// And evaluates `left and right`. right is only evaluated if left is truthy.
func And(left Value, right func() (Value, error)) (Value, error) {
	if !ToBoolean(left) {
		return left, nil
	}
	return right()
}

// Or evaluates `left or right`. right is only evaluated if left is falsy.
func Or(left Value, right func() (Value, error)) (Value, error) {
	if ToBoolean(left) {
		return left, nil
	}
	return right()
}

func values(vals ...Value) []Value {
	return vals
}
