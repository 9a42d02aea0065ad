package engine

import (
	"errors"
	"math"

	"github.com/tsatke/luart/internal/engine/value"
)

func (suite *EngineSuite) TestToBoolean() {
	suite.True(ToBoolean(num(0)))
	suite.True(ToBoolean(str("")))
	suite.True(ToBoolean(value.NewTable()))
	suite.True(ToBoolean(value.True))
	suite.False(ToBoolean(value.Nil))
	suite.False(ToBoolean(value.False))
	suite.False(ToBoolean(nil))

	suite.Equal(value.True, Not(value.Nil))
	suite.Equal(value.False, Not(num(0)))
}

func (suite *EngineSuite) TestArithmetic() {
	tests := []struct {
		name  string
		op    func(left, right value.Value) (value.Value, error)
		left  value.Value
		right value.Value
		want  value.Value
	}{
		{"add", suite.engine.Add, num(1), num(2), num(3)},
		{"add coerces strings", suite.engine.Add, str("10"), num(1), num(11)},
		{"add hex string", suite.engine.Add, str("0x10"), num(0), num(16)},
		{"sub", suite.engine.Sub, num(1), num(2), num(-1)},
		{"mul", suite.engine.Mul, num(3), num(2.5), num(7.5)},
		{"div", suite.engine.Div, num(7), num(2), num(3.5)},
		{"mod", suite.engine.Mod, num(7), num(3), num(1)},
		{"mod negative dividend", suite.engine.Mod, num(-7), num(3), num(2)},
		{"mod negative divisor", suite.engine.Mod, num(7), num(-3), num(-2)},
		{"pow", suite.engine.Pow, num(2), num(10), num(1024)},
		{"floor div", suite.engine.FloorDiv, num(-7), num(2), num(-4)},
		{"band", suite.engine.BAnd, num(6), num(3), num(2)},
		{"bor", suite.engine.BOr, num(6), num(3), num(7)},
		{"bxor", suite.engine.BXor, num(6), num(3), num(5)},
		{"shl", suite.engine.Shl, num(1), num(4), num(16)},
		{"shr", suite.engine.Shr, num(16), num(4), num(1)},
	}
	for _, test := range tests {
		suite.Run(test.name, func() {
			got, err := test.op(test.left, test.right)
			suite.NoError(err)
			suite.Equal(test.want, got)
		})
	}
}

func (suite *EngineSuite) TestArithmeticTypeMismatch() {
	_, err := suite.engine.Add(num(1), value.NewTable())
	suite.True(errors.Is(err, ErrTypeMismatch))
	suite.EqualError(err, "attempt to perform arithmetic on a table value")

	_, err = suite.engine.Mul(str("abc"), num(1))
	suite.EqualError(err, "attempt to perform arithmetic on a string value")

	_, err = suite.engine.BAnd(num(1.5), num(1))
	suite.EqualError(err, "number has no integer representation")
}

func (suite *EngineSuite) TestUnm() {
	got, err := suite.engine.Unm(num(3))
	suite.NoError(err)
	suite.Equal(num(-3), got)

	_, err = suite.engine.Unm(value.True)
	suite.True(errors.Is(err, ErrTypeMismatch))

	got, err = suite.engine.BNot(num(0))
	suite.NoError(err)
	suite.Equal(num(-1), got)
}

func (suite *EngineSuite) TestConcat() {
	got, err := suite.engine.Concat(str("a"), num(1))
	suite.NoError(err)
	suite.Equal(str("a1"), got)

	got, err = suite.engine.Concat(num(1.5), str("x"))
	suite.NoError(err)
	suite.Equal(str("1.5x"), got)

	_, err = suite.engine.Concat(str("a"), value.Nil)
	suite.True(errors.Is(err, ErrTypeMismatch))
	suite.EqualError(err, "attempt to concatenate a nil value")
}

func (suite *EngineSuite) TestLength() {
	t := value.NewTable()
	t.Set(num(1), str("a"))
	t.Set(num(2), str("b"))
	t.Set(num(4), str("d"))
	got, err := suite.engine.Len(t)
	suite.NoError(err)
	suite.Equal(num(2), got)

	got, err = suite.engine.Len(str("hello"))
	suite.NoError(err)
	suite.Equal(num(5), got)

	got, err = suite.engine.Len(value.NewTable())
	suite.NoError(err)
	suite.Equal(num(0), got)

	_, err = suite.engine.Len(num(3))
	suite.True(errors.Is(err, ErrTypeMismatch))
	suite.EqualError(err, "attempt to get length of a number value")
}

func (suite *EngineSuite) TestEquality() {
	eq := func(left, right value.Value) bool {
		got, err := suite.engine.Eq(left, right)
		suite.Require().NoError(err)
		return got
	}

	suite.True(eq(value.Nil, value.Nil))
	suite.True(eq(nil, value.Nil))
	suite.False(eq(value.Nil, value.False))
	suite.True(eq(num(1), num(1)))
	suite.False(eq(num(1), str("1")))
	suite.True(eq(str("a"), str("a")))
	suite.False(eq(num(math.NaN()), num(math.NaN())))

	t1, t2 := value.NewTable(), value.NewTable()
	suite.True(eq(t1, t1))
	suite.False(eq(t1, t2))

	ne, err := suite.engine.Ne(t1, t2)
	suite.NoError(err)
	suite.True(ne)
}

func (suite *EngineSuite) TestOrdering() {
	cmp := func(op func(l, r value.Value) (bool, error), left, right value.Value) bool {
		got, err := op(left, right)
		suite.Require().NoError(err)
		return got
	}

	suite.True(cmp(suite.engine.Lt, num(1), num(2)))
	suite.False(cmp(suite.engine.Lt, num(2), num(2)))
	suite.True(cmp(suite.engine.Le, num(2), num(2)))
	suite.True(cmp(suite.engine.Gt, num(3), num(2)))
	suite.True(cmp(suite.engine.Ge, num(2), num(2)))
	suite.True(cmp(suite.engine.Lt, str("a"), str("b")))
	suite.True(cmp(suite.engine.Gt, str("b"), str("a")))

	_, err := suite.engine.Lt(num(1), str("2"))
	suite.True(errors.Is(err, ErrTypeMismatch))
	suite.EqualError(err, "attempt to compare number with string")

	_, err = suite.engine.Le(value.NewTable(), value.NewTable())
	suite.EqualError(err, "attempt to compare two table values")
}

// vector returns a table with the given metatable and field x.
func vector(mt *value.Table, x float64) *value.Table {
	t := value.NewTable()
	t.Set(str("x"), num(x))
	t.Metatable = mt
	return t
}

func field(v value.Value, name string) value.Value {
	return v.(*value.Table).Lookup(str(name))
}

func (suite *EngineSuite) TestMetamethods() {
	mt := value.NewTable()
	mt.Set(str("__add"), value.NewFunction("__add", func(args ...value.Value) ([]value.Value, error) {
		l, r := field(args[0], "x").(value.Number), field(args[1], "x").(value.Number)
		return vals(vector(mt, float64(l+r))), nil
	}))
	mt.Set(str("__unm"), value.NewFunction("__unm", func(args ...value.Value) ([]value.Value, error) {
		return vals(vector(mt, -float64(field(args[0], "x").(value.Number)))), nil
	}))
	mt.Set(str("__len"), value.NewFunction("__len", func(args ...value.Value) ([]value.Value, error) {
		return vals(num(42), num(43)), nil
	}))
	mt.Set(str("__concat"), value.NewFunction("__concat", func(args ...value.Value) ([]value.Value, error) {
		return vals(str("concat")), nil
	}))
	mt.Set(str("__eq"), value.NewFunction("__eq", func(args ...value.Value) ([]value.Value, error) {
		return vals(value.Boolean(field(args[0], "x") == field(args[1], "x"))), nil
	}))
	mt.Set(str("__lt"), value.NewFunction("__lt", func(args ...value.Value) ([]value.Value, error) {
		return vals(value.Boolean(field(args[0], "x").(value.Number) < field(args[1], "x").(value.Number))), nil
	}))

	a, b := vector(mt, 1), vector(mt, 2)

	sum, err := suite.engine.Add(a, b)
	suite.NoError(err)
	suite.Equal(num(3), field(sum, "x"))

	neg, err := suite.engine.Unm(a)
	suite.NoError(err)
	suite.Equal(num(-1), field(neg, "x"))

	length, err := suite.engine.Len(a)
	suite.NoError(err)
	suite.Equal(num(42), length, "only the first result of a metamethod is used")

	joined, err := suite.engine.Concat(str("x"), a)
	suite.NoError(err)
	suite.Equal(str("concat"), joined)

	eq, err := suite.engine.Eq(a, vector(mt, 1))
	suite.NoError(err)
	suite.True(eq)
	eq, err = suite.engine.Eq(a, b)
	suite.NoError(err)
	suite.False(eq)

	lt, err := suite.engine.Lt(a, b)
	suite.NoError(err)
	suite.True(lt)
	gt, err := suite.engine.Gt(a, b)
	suite.NoError(err)
	suite.False(gt)
	// no __le, so a <= b is not (b < a)
	le, err := suite.engine.Le(a, b)
	suite.NoError(err)
	suite.True(le)
}

func (suite *EngineSuite) TestEqMetamethodOnlyForTables() {
	called := false
	mt := value.NewTable()
	mt.Set(str("__eq"), value.NewFunction("__eq", func(args ...value.Value) ([]value.Value, error) {
		called = true
		return vals(value.True), nil
	}))
	eq, err := suite.engine.Eq(vector(mt, 1), num(1))
	suite.NoError(err)
	suite.False(eq)
	suite.False(called)
}

func (suite *EngineSuite) TestIndex() {
	t := value.NewTable()
	t.Set(str("present"), num(1))

	got, err := suite.engine.Index(t, str("present"))
	suite.NoError(err)
	suite.Equal(num(1), got)

	got, err = suite.engine.Index(t, str("absent"))
	suite.NoError(err)
	suite.Equal(value.Nil, got)

	var gotKey value.Value
	mt := value.NewTable()
	mt.Set(str("__index"), value.NewFunction("__index", func(args ...value.Value) ([]value.Value, error) {
		gotKey = args[1]
		return vals(str("fallback")), nil
	}))
	t.Metatable = mt

	got, err = suite.engine.Index(t, str("present"))
	suite.NoError(err)
	suite.Equal(num(1), got, "__index must only be consulted on a miss")
	suite.Nil(gotKey)

	got, err = suite.engine.Index(t, str("absent"))
	suite.NoError(err)
	suite.Equal(str("fallback"), got)
	suite.Equal(str("absent"), gotKey)
}

func (suite *EngineSuite) TestIndexChain() {
	base := value.NewTable()
	base.Set(str("greet"), str("hello"))
	mt := value.NewTable()
	mt.Set(str("__index"), base)
	t := value.NewTable()
	t.Metatable = mt

	got, err := suite.engine.Index(t, str("greet"))
	suite.NoError(err)
	suite.Equal(str("hello"), got)
}

func (suite *EngineSuite) TestIndexString() {
	results, err := suite.engine.Apply(str("hello"), "len")
	suite.NoError(err)
	suite.Equal(vals(num(5)), results)

	results, err = suite.engine.Apply(str("hello"), "sub", num(2), num(3))
	suite.NoError(err)
	suite.Equal(vals(str("el")), results)
}

func (suite *EngineSuite) TestIndexTypeMismatch() {
	_, err := suite.engine.Index(value.Nil, str("x"))
	suite.True(errors.Is(err, ErrTypeMismatch))
	suite.EqualError(err, "attempt to index a nil value")

	_, err = suite.engine.Index(num(1), str("x"))
	suite.EqualError(err, "attempt to index a number value")
}

func (suite *EngineSuite) TestSetIndex() {
	t := value.NewTable()
	mt := value.NewTable()
	mt.Set(str("__newindex"), value.NewFunction("__newindex", func(args ...value.Value) ([]value.Value, error) {
		suite.Fail("__newindex must never be called")
		return nil, nil
	}))
	t.Metatable = mt

	suite.NoError(suite.engine.SetIndex(t, str("k"), num(1)))
	suite.Equal(num(1), t.Lookup(str("k")))

	suite.NoError(suite.engine.SetIndex(t, str("k"), value.Nil))
	_, ok := t.Get(str("k"))
	suite.False(ok)

	err := suite.engine.SetIndex(t, value.Nil, num(1))
	suite.EqualError(err, "table index is nil")
	err = suite.engine.SetIndex(t, num(math.NaN()), num(1))
	suite.EqualError(err, "table index is NaN")
	err = suite.engine.SetIndex(str("s"), num(1), num(1))
	suite.True(errors.Is(err, ErrTypeMismatch))
}

func (suite *EngineSuite) TestToString() {
	tests := []struct {
		in   value.Value
		want string
	}{
		{value.Nil, "nil"},
		{value.True, "true"},
		{value.False, "false"},
		{num(3), "3"},
		{num(-0.5), "-0.5"},
		{num(1e100), "1e+100"},
		{num(math.Inf(1)), "inf"},
		{num(math.Inf(-1)), "-inf"},
		{str("x"), "x"},
	}
	for _, test := range tests {
		suite.Equal(test.want, ToString(test.in))
	}
}

func (suite *EngineSuite) TestToNumber() {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"  42  ", 42, true},
		{"-1.5", -1.5, true},
		{"1e3", 1000, true},
		{"0x1F", 31, true},
		{"-0x10", -16, true},
		{"", 0, false},
		{"abc", 0, false},
		{"inf", 0, false},
		{"nan", 0, false},
		{"1_000", 0, false},
	}
	for _, test := range tests {
		got, ok := ToNumber(str(test.in))
		suite.Equal(test.ok, ok, test.in)
		if test.ok {
			suite.Equal(test.want, got, test.in)
		}
	}
}
