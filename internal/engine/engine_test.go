package engine

import (
	"errors"
	"strings"
	"time"

	"github.com/tsatke/luart/internal/engine/value"
)

func (suite *EngineSuite) TestTrivial() {
	results, err := suite.engine.Run(func(e *Engine, args ...value.Value) ([]value.Value, error) {
		e.SetGlobal("a", value.NewString("Hello, World!"))
		print, err := e.Global("print")
		if err != nil {
			return nil, err
		}
		a, err := e.Global("a")
		if err != nil {
			return nil, err
		}
		return e.Call(print, a)
	})
	suite.Len(results, 0)
	suite.NoError(err)
	suite.Equal("Hello, World!\n", suite.stdout.String())
}

func (suite *EngineSuite) TestRunPassesVarargs() {
	var got []value.Value
	_, err := suite.engine.Run(func(e *Engine, args ...value.Value) ([]value.Value, error) {
		got = args
		return nil, nil
	})
	suite.NoError(err)
	suite.Equal(vals(str("one"), str("two")), got)
}

func (suite *EngineSuite) TestRunFlushesPartialLine() {
	_, err := suite.engine.Run(func(e *Engine, args ...value.Value) ([]value.Value, error) {
		write, err := e.Index(e.Globals().Lookup(value.NewString("io")), value.NewString("write"))
		if err != nil {
			return nil, err
		}
		return e.Call(write, value.NewString("no newline"))
	})
	suite.NoError(err)
	suite.Equal("no newline", suite.stdout.String())
}

func (suite *EngineSuite) TestGlobals() {
	g := suite.engine.Globals()
	suite.Same(g, g.Lookup(value.NewString("_G")))
	suite.Equal(value.NewString("Lua 5.3"), g.Lookup(value.NewString("_VERSION")))
	for _, lib := range []string{"string", "table", "math", "io", "host"} {
		suite.IsType(&value.Table{}, g.Lookup(value.NewString(lib)), lib)
	}
}

func (suite *EngineSuite) TestArgTable() {
	arg := suite.global("arg").(*value.Table)
	suite.Equal(str("luart"), arg.Lookup(num(-1)))
	suite.Equal(str("script"), arg.Lookup(num(0)))
	suite.Equal(str("one"), arg.Lookup(num(1)))
	suite.Equal(str("two"), arg.Lookup(num(2)))
	suite.Equal(2, arg.Length())
}

func (suite *EngineSuite) TestEnginesAreIndependent() {
	other := New(WithStdout(new(strings.Builder)), WithClock(mockClock{}))
	suite.engine.SetGlobal("shared", value.True)
	suite.Equal(value.Nil, other.Globals().Lookup(value.NewString("shared")))
	suite.NotSame(suite.engine.Globals().Lookup(value.NewString("string")), other.Globals().Lookup(value.NewString("string")))
}

func (suite *EngineSuite) TestStack() {
	var c, b, a *value.Function
	c = value.NewFunction("c", func(args ...value.Value) ([]value.Value, error) {
		return suite.call("error", str("message"))
	})
	b = value.NewFunction("b", func(args ...value.Value) ([]value.Value, error) {
		return suite.engine.Call(c)
	})
	a = value.NewFunction("a", func(args ...value.Value) ([]value.Value, error) {
		return suite.engine.Call(b)
	})

	results, err := suite.engine.Run(func(e *Engine, args ...value.Value) ([]value.Value, error) {
		return e.Call(a)
	})
	suite.Len(results, 0)
	suite.IsType(Error{}, err)
	suite.Equal("message", err.Error())
	suite.Equal([]StackFrame{
		{
			Name: "error",
		},
		{
			Name: "c",
		},
		{
			Name: "b",
		},
		{
			Name: "a",
		},
		{
			Name: "main chunk",
		},
	}, err.(Error).Stack)
}

func (suite *EngineSuite) TestStackOverflow() {
	maxStackSize := 5000
	start := time.Now()

	e := New(WithMaxStackSize(maxStackSize), WithClock(mockClock{}))
	var infiniteRecursion *value.Function
	infiniteRecursion = value.NewFunction("infiniteRecursion", func(args ...value.Value) ([]value.Value, error) {
		return e.Call(infiniteRecursion)
	})
	results, err := e.Call(infiniteRecursion)

	suite.T().Logf("stack overflow took %s to occur", time.Since(start))

	suite.Len(results, 0)
	suite.EqualError(err, "stack overflow while calling 'infiniteRecursion'")
}

func (suite *EngineSuite) TestErrors() {
	_, err := suite.call("error")
	suite.EqualError(err, "error called with <nil>")

	_, err = suite.call("error", str("custom message"))
	suite.EqualError(err, "custom message")

	var luaErr Error
	payload := value.NewTable()
	_, err = suite.call("error", payload)
	suite.True(errors.As(err, &luaErr))
	suite.Same(payload, luaErr.Value)
}

type recordingHost struct {
	cfg HostConfig
}

func (h *recordingHost) Global() value.Value { return value.NewString("host global") }

func (h *recordingHost) New(ctor value.Value, args ...value.Value) (value.Value, error) {
	return ctor, nil
}

func (h *recordingHost) Import(name string) (value.Value, error) {
	return h.cfg.Modules[name](name)
}

func (suite *EngineSuite) TestHostFactory() {
	var bridge *recordingHost
	e := New(
		WithClock(mockClock{}),
		WithHostFactory(func(cfg HostConfig) HostBridge {
			bridge = &recordingHost{cfg: cfg}
			return bridge
		}),
		WithModule("mod", func(name string) (value.Value, error) {
			return value.NewString("loaded " + name), nil
		}),
		WithHostGlobal("version", str("1.0")),
	)
	suite.Require().NotNil(bridge)
	suite.Equal(str("1.0"), bridge.cfg.Globals["version"])

	host := e.Globals().Lookup(str("host")).(*value.Table)
	suite.Equal(str("host global"), host.Lookup(str("global")))
	results, err := e.Call(host.Lookup(str("import")), str("mod"))
	suite.NoError(err)
	suite.Equal(vals(str("loaded mod")), results)

	fixed := &recordingHost{}
	e = New(WithClock(mockClock{}), WithHost(fixed), WithHostFactory(func(HostConfig) HostBridge {
		suite.Fail("factory must not be used when a bridge is set")
		return nil
	}))
	suite.Equal(str("host global"), e.Globals().Lookup(str("host")).(*value.Table).Lookup(str("global")))
}

func (suite *EngineSuite) TestWithoutHost() {
	host := suite.global("host").(*value.Table)
	suite.IsType(&value.Table{}, host.Lookup(str("global")))

	_, err := suite.call("host.import", str("anything"))
	suite.True(errors.Is(err, ErrNoHost), "%v", err)
	_, err = suite.call("host.new", value.NewTable())
	suite.True(errors.Is(err, ErrNoHost), "%v", err)
}
