package engine

import (
	"errors"
	"os"

	"github.com/spf13/afero"
	"github.com/tsatke/luart/internal/engine/value"
)

// open opens path in mode through io.open and returns the file handle.
func (suite *EngineSuite) open(path, mode string) value.Value {
	results := suite.mustCall("io.open", str(path), str(mode))
	suite.Require().Len(results, 1)
	return results[0]
}

func (suite *EngineSuite) apply(obj value.Value, method string, args ...value.Value) []value.Value {
	results, err := suite.engine.Apply(obj, method, args...)
	suite.Require().NoError(err)
	return results
}

func (suite *EngineSuite) TestFileRoundTrip() {
	f := suite.open("out.txt", "w")
	suite.Equal(vals(f), suite.apply(f, "write", str("ab")))
	suite.apply(f, "write", str("cd"))

	exists, err := afero.Exists(suite.fs, "out.txt")
	suite.NoError(err)
	suite.False(exists, "file must not be written before close")

	suite.Equal(vals(value.True), suite.apply(f, "close"))
	data, err := afero.ReadFile(suite.fs, "out.txt")
	suite.NoError(err)
	suite.Equal("abcd", string(data))

	r := suite.open("out.txt", "r")
	suite.Equal(vals(str("abcd")), suite.apply(r, "read", str("*all")))
	suite.Equal(vals(str("")), suite.apply(r, "read", str("*a")))
}

func (suite *EngineSuite) TestFileWriteNumbers() {
	f := suite.open("n.txt", "w")
	suite.apply(f, "write", num(1), str(" "), num(2.5))
	suite.mustCall("io.close", f)

	data, err := afero.ReadFile(suite.fs, "n.txt")
	suite.NoError(err)
	suite.Equal("1 2.5", string(data))
}

func (suite *EngineSuite) TestFileReadFormats() {
	suite.Require().NoError(afero.WriteFile(suite.fs, "in.txt", []byte("line1\nline2\nabcdef"), 0644))
	f := suite.open("in.txt", "r")

	suite.Equal(vals(str("line1")), suite.apply(f, "read"))
	suite.Equal(vals(str("line2\n"), str("abc")), suite.apply(f, "read", str("*L"), num(3)))
	suite.Equal(vals(str("def"), value.Nil), suite.apply(f, "read", str("*l"), str("*l")))
	suite.Equal(vals(value.Nil), suite.apply(f, "read", num(1)))
	suite.Equal(vals(value.Nil), suite.apply(f, "read", num(0)))
}

func (suite *EngineSuite) TestFileReadHugeCount() {
	suite.Require().NoError(afero.WriteFile(suite.fs, "abc.txt", []byte("abc"), 0644))

	for _, count := range []value.Value{num(1e18), str("1000000000000000000"), num(1e300)} {
		f := suite.open("abc.txt", "r")
		suite.Equal(vals(str("abc")), suite.apply(f, "read", count), "read(%v)", count)
		suite.Equal(vals(value.Nil), suite.apply(f, "read", count), "read(%v) at the end", count)
	}
}

func (suite *EngineSuite) TestFileReadNumber() {
	suite.Require().NoError(afero.WriteFile(suite.fs, "num.txt", []byte("42x"), 0644))
	f := suite.open("num.txt", "r")
	suite.Equal(vals(num(42)), suite.apply(f, "read", str("*number")))
	suite.Equal(vals(str("x")), suite.apply(f, "read", num(1)))

	suite.Require().NoError(afero.WriteFile(suite.fs, "nan.txt", []byte("x42"), 0644))
	f = suite.open("nan.txt", "r")
	_, err := suite.engine.Apply(f, "read", str("*number"))
	suite.True(errors.Is(err, ErrReadFormat), "%v", err)

	suite.Require().NoError(afero.WriteFile(suite.fs, "float.txt", []byte("  -3.5 rest"), 0644))
	f = suite.open("float.txt", "r")
	suite.Equal(vals(num(-3.5), str(" rest")), suite.apply(f, "read", str("*n"), str("*a")))
}

func (suite *EngineSuite) TestFileLines() {
	suite.Require().NoError(afero.WriteFile(suite.fs, "lines.txt", []byte("a\nb\n\nc"), 0644))
	f := suite.open("lines.txt", "r")
	iter := suite.apply(f, "lines")[0]

	var got []string
	for {
		results, err := suite.engine.Call(iter)
		suite.Require().NoError(err)
		line := First(results)
		if value.IsNil(line) {
			break
		}
		got = append(got, ToString(line))
	}
	suite.Equal([]string{"a", "b", "", "c"}, got)
}

func (suite *EngineSuite) TestFileSeek() {
	suite.Require().NoError(afero.WriteFile(suite.fs, "seek.txt", []byte("0123456789"), 0644))
	f := suite.open("seek.txt", "r")

	suite.Equal(vals(num(10)), suite.apply(f, "seek", str("end")))
	suite.Equal(vals(num(2)), suite.apply(f, "seek", str("set"), num(2)))
	suite.Equal(vals(str("23")), suite.apply(f, "read", num(2)))
	suite.Equal(vals(num(4)), suite.apply(f, "seek"))
	suite.Equal(vals(num(3)), suite.apply(f, "seek", str("cur"), num(-1)))
	suite.Equal(vals(value.Nil, str("Invalid argument")), suite.apply(f, "seek", str("set"), num(-1)))

	_, err := suite.engine.Apply(f, "seek", str("middle"))
	suite.EqualError(err, "bad argument #2 to 'seek' (invalid option 'middle')")
}

func (suite *EngineSuite) TestFileOpenErrors() {
	_, err := suite.call("io.open", str("x.txt"), str("a"))
	suite.True(errors.Is(err, ErrUnsupportedMode))
	suite.EqualError(err, "file mode: a")

	_, err = suite.call("io.open", str("missing.txt"))
	suite.True(errors.Is(err, os.ErrNotExist), "%v", err)

	_, err = suite.call("io.open", num(1))
	suite.EqualError(err, "bad argument #1 to 'open' (cannot open non-string path)")
}

func (suite *EngineSuite) TestFileMisuse() {
	suite.Require().NoError(afero.WriteFile(suite.fs, "r.txt", []byte("content"), 0644))
	r := suite.open("r.txt", "r")
	w := suite.open("w.txt", "w")

	_, err := suite.engine.Apply(r, "write", str("x"))
	suite.EqualError(err, "file not opened for writing")
	_, err = suite.engine.Apply(w, "read")
	suite.EqualError(err, "file not opened for reading")

	suite.mustCall("io.close", r)
	suite.Equal(vals(str("file (closed)")), suite.mustCall("tostring", r))
	_, err = suite.engine.Apply(r, "read")
	suite.EqualError(err, "attempt to use a closed file")
	suite.True(errors.Is(err, ErrTypeMismatch))

	_, err = suite.engine.Call(suite.global("io", "close"), str("not a file"))
	suite.True(errors.Is(err, ErrNotCallable), "%v", err)
}

func (suite *EngineSuite) TestIoWrite() {
	results := suite.mustCall("io.write", str("a"), num(1), str("\n"), str("partial"))
	suite.Empty(results)
	suite.Equal("a1\n", suite.stdout.String())

	suite.mustCall("io.flush")
	suite.Equal("a1\npartial", suite.stdout.String())

	_, err := suite.call("io.write", value.NewTable())
	suite.EqualError(err, "bad argument #1 to 'write' (string expected, got table)")
}

func (suite *EngineSuite) TestIoRead() {
	suite.stdin.WriteString("first\n12 rest\n")

	suite.Equal(vals(str("first")), suite.mustCall("io.read"))
	suite.Equal(vals(num(12)), suite.mustCall("io.read", str("*n")))
	suite.Equal(vals(str(" rest\n")), suite.mustCall("io.read", str("*a")))
	suite.Equal(vals(value.Nil), suite.mustCall("io.read", str("*l")))
}

func (suite *EngineSuite) TestPrintAndWriteInterleave() {
	suite.mustCall("io.write", str("x = "))
	suite.mustCall("print", num(1))
	suite.mustCall("io.write", str("done"))
	suite.Equal("x = 1\n", suite.stdout.String())
	suite.engine.Flush()
	suite.Equal("x = 1\ndone", suite.stdout.String())
}
