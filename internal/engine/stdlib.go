package engine

import (
	"errors"
	"runtime"
	"strings"

	. "github.com/tsatke/luart/internal/engine/value"
)

func (e *Engine) baseLibrary() []libFunc {
	return []libFunc{
		{"assert", e.assert},
		{"collectgarbage", e.collectgarbage},
		{"error", e.error},
		{"getmetatable", e.getmetatable},
		{"ipairs", e.ipairs},
		{"next", e.next},
		{"pairs", e.pairs},
		{"pcall", e.pcall},
		{"print", e.print},
		{"rawequal", e.rawequal},
		{"rawget", e.rawget},
		{"rawlen", e.rawlen},
		{"rawset", e.rawset},
		{"select", e.select_},
		{"setmetatable", e.setmetatable},
		{"tonumber", e.tonumber},
		{"tostring", e.tostring},
		{"type", e.type_},
		{"unpack", e.tableUnpack},
		{"xpcall", e.xpcall},
	}
}

func (e *Engine) assert(args ...Value) ([]Value, error) {
	if len(args) == 0 {
		return nil, badArgument(1, "assert", "value expected")
	}
	if !ToBoolean(args[0]) {
		if len(args) > 1 {
			return e.error(args[1])
		}
		return e.error(NewString("assertion failed!"))
	}
	return args, nil
}

// collectgarbage only reports on and triggers the host collector. Options
// that would change the collector's settings are accepted, but have no
// effect, since they would leak into every other engine in the process.
func (e *Engine) collectgarbage(args ...Value) ([]Value, error) {
	opt, err := optString("collectgarbage", args, 0, "collect")
	if err != nil {
		return nil, err
	}
	switch opt {
	case "collect":
		runtime.GC()
		return values(NewNumber(0)), nil
	case "count":
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return values(NewNumber(float64(m.HeapAlloc) / 1024)), nil
	case "step":
		runtime.GC()
		return values(True), nil
	case "isrunning":
		return values(True), nil
	case "stop", "restart", "setpause", "setstepmul", "incremental", "generational":
		return values(NewNumber(0)), nil
	}
	return nil, badArgument(1, "collectgarbage", "invalid option '"+opt+"'")
}

// error raises its first argument as the payload of an Error. The level
// argument is accepted for compatibility, but positions are not tracked.
func (e *Engine) error(args ...Value) ([]Value, error) {
	luaErr := Error{
		Stack: e.stack.Slice(),
	}
	if len(args) > 0 {
		luaErr.Value = arg(args, 0)
	}
	return nil, luaErr
}

func (e *Engine) getmetatable(args ...Value) ([]Value, error) {
	mt := e.metatable(arg(args, 0))
	if mt == nil {
		return values(Nil), nil
	}
	if protected, ok := mt.Get(NewString("__metatable")); ok {
		return values(protected), nil
	}
	return values(mt), nil
}

func (e *Engine) setmetatable(args ...Value) ([]Value, error) {
	t, err := checkTable("setmetatable", args, 0)
	if err != nil {
		return nil, err
	}
	mtArg := arg(args, 1)
	mt, isTable := mtArg.(*Table)
	if !isTable && !IsNil(mtArg) {
		return nil, badArgument(2, "setmetatable", "nil or table expected")
	}
	if t.Metatable != nil {
		if _, ok := t.Metatable.Get(NewString("__metatable")); ok {
			return nil, typeMismatch("cannot change a protected metatable")
		}
	}
	t.Metatable = mt
	return values(t), nil
}

func (e *Engine) ipairs(args ...Value) ([]Value, error) {
	t, err := checkAny("ipairs", args, 0)
	if err != nil {
		return nil, err
	}
	iter := NewFunction("ipairs_iterator", func(args ...Value) ([]Value, error) {
		i, err := checkInteger("ipairs_iterator", args, 1)
		if err != nil {
			return nil, err
		}
		i++
		val, err := e.Index(arg(args, 0), NewNumber(float64(i)))
		if err != nil {
			return nil, err
		}
		if IsNil(val) {
			return values(Nil), nil
		}
		return values(NewNumber(float64(i)), val), nil
	})
	return values(iter, t, NewNumber(0)), nil
}

func (e *Engine) next(args ...Value) ([]Value, error) {
	t, err := checkTable("next", args, 0)
	if err != nil {
		return nil, err
	}
	k, v, ok := t.Next(arg(args, 1))
	if !ok {
		return nil, typeMismatch("invalid key to 'next'")
	}
	if IsNil(k) {
		return values(Nil), nil
	}
	return values(k, v), nil
}

func (e *Engine) pairs(args ...Value) ([]Value, error) {
	t, err := checkAny("pairs", args, 0)
	if err != nil {
		return nil, err
	}
	if handler := e.metaMethod(t, "__pairs"); !IsNil(handler) {
		results, err := e.Call(handler, t)
		if err != nil {
			return nil, err
		}
		return values(arg(results, 0), arg(results, 1), arg(results, 2)), nil
	}
	if _, err := checkTable("pairs", args, 0); err != nil {
		return nil, err
	}
	next := e._G.Lookup(NewString("next"))
	if _, ok := next.(*Function); !ok {
		next = NewFunction("next", e.next)
	}
	return values(next, t, Nil), nil
}

// pcall is the protective boundary for translated code. Any failure raised
// by the called function is turned into (false, payload).
func (e *Engine) pcall(args ...Value) ([]Value, error) {
	fn, err := checkAny("pcall", args, 0)
	if err != nil {
		return nil, err
	}
	results, err := e.Call(fn, args[1:]...)
	if err != nil {
		return values(False, errorValue(err)), nil
	}
	return append(values(True), results...), nil
}

func (e *Engine) xpcall(args ...Value) ([]Value, error) {
	if len(args) < 2 {
		return nil, badArgument(2, "xpcall", "value expected")
	}
	results, err := e.Call(args[0], args[2:]...)
	if err != nil {
		handled, herr := e.Call(args[1], errorValue(err))
		if herr != nil {
			return values(False, errorValue(herr)), nil
		}
		return append(values(False), handled...), nil
	}
	return append(values(True), results...), nil
}

// errorValue extracts the payload of a failure, as seen by translated code.
func errorValue(err error) Value {
	var luaErr Error
	if errors.As(err, &luaErr) {
		if luaErr.Value == nil {
			return Nil
		}
		return luaErr.Value
	}
	return NewString(err.Error())
}

func (e *Engine) print(args ...Value) ([]Value, error) {
	var line strings.Builder
	for i := 0; i < len(args); i++ {
		if i != 0 {
			line.WriteByte('\t')
		}
		s, err := e.tostringValue(args[i])
		if err != nil {
			return nil, err
		}
		line.WriteString(s)
	}
	line.WriteByte('\n')
	e.out.WriteString(line.String())
	return values(), nil
}

func (e *Engine) rawequal(args ...Value) ([]Value, error) {
	if len(args) < 2 {
		return nil, badArgument(len(args)+1, "rawequal", "value expected")
	}
	return values(Boolean(RawEqual(args[0], args[1]))), nil
}

func (e *Engine) rawget(args ...Value) ([]Value, error) {
	t, err := checkTable("rawget", args, 0)
	if err != nil {
		return nil, err
	}
	return values(t.Lookup(arg(args, 1))), nil
}

func (e *Engine) rawlen(args ...Value) ([]Value, error) {
	switch v := arg(args, 0).(type) {
	case *Table:
		return values(NewNumber(float64(v.Length()))), nil
	case String:
		return values(NewNumber(float64(len(v)))), nil
	}
	return nil, badArgument(1, "rawlen", "table or string expected")
}

func (e *Engine) rawset(args ...Value) ([]Value, error) {
	t, err := checkTable("rawset", args, 0)
	if err != nil {
		return nil, err
	}
	if err := e.SetIndex(t, arg(args, 1), arg(args, 2)); err != nil {
		return nil, err
	}
	return values(t), nil
}

func (e *Engine) select_(args ...Value) ([]Value, error) {
	if s, ok := arg(args, 0).(String); ok && s == "#" {
		return values(NewNumber(float64(len(args) - 1))), nil
	}
	n, err := checkInteger("select", args, 0)
	if err != nil {
		return nil, err
	}
	rest := args[1:]
	switch {
	case n < 0:
		n = int64(len(rest)) + n
		if n < 0 {
			return nil, badArgument(1, "select", "index out of range")
		}
	case n == 0:
		return nil, badArgument(1, "select", "index out of range")
	default:
		n--
	}
	if n >= int64(len(rest)) {
		return values(), nil
	}
	return rest[n:], nil
}

func (e *Engine) tonumber(args ...Value) ([]Value, error) {
	if IsNil(arg(args, 1)) {
		if _, err := checkAny("tonumber", args, 0); err != nil {
			return nil, err
		}
		if f, ok := ToNumber(args[0]); ok {
			return values(NewNumber(f)), nil
		}
		return values(Nil), nil
	}

	base, err := checkInteger("tonumber", args, 1)
	if err != nil {
		return nil, err
	}
	if base < 2 || base > 36 {
		return nil, badArgument(2, "tonumber", "base out of range")
	}
	s, ok := arg(args, 0).(String)
	if !ok {
		return nil, badArgument(1, "tonumber", "string expected, got "+argTypeName(args, 0))
	}
	if n, ok := parseInteger(strings.ToLower(strings.TrimSpace(string(s))), int(base)); ok {
		return values(NewNumber(float64(n))), nil
	}
	return values(Nil), nil
}

func parseInteger(s string, base int) (int64, bool) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	var n int64
	for _, c := range s {
		var digit int
		switch {
		case c >= '0' && c <= '9':
			digit = int(c - '0')
		case c >= 'a' && c <= 'z':
			digit = int(c-'a') + 10
		default:
			return 0, false
		}
		if digit >= base {
			return 0, false
		}
		n = n*int64(base) + int64(digit)
	}
	if neg {
		n = -n
	}
	return n, true
}

func (e *Engine) tostring(args ...Value) ([]Value, error) {
	val, err := checkAny("tostring", args, 0)
	if err != nil {
		return nil, err
	}
	s, err := e.tostringValue(val)
	if err != nil {
		return nil, err
	}
	return values(NewString(s)), nil
}

// tostringValue renders val, honouring a __tostring metamethod.
func (e *Engine) tostringValue(val Value) (string, error) {
	if handler := e.metaMethod(val, "__tostring"); !IsNil(handler) {
		results, err := e.Call(handler, val)
		if err != nil {
			return "", err
		}
		s, ok := First(results).(String)
		if !ok {
			return "", typeMismatch("'__tostring' must return a string")
		}
		return string(s), nil
	}
	return ToString(val), nil
}

func (e *Engine) type_(args ...Value) ([]Value, error) {
	val, err := checkAny("type", args, 0)
	if err != nil {
		return nil, err
	}
	return values(NewString(typeOf(val).String())), nil
}
