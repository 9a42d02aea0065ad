// Command linecount prints the number of lines, words and bytes of the
// files given on the command line. It is written against the runtime the
// same way a translated program is, from this source:
//
//	local total = 0
//	for i = 1, #arg do
//		local f = io.open(arg[i], "r")
//		local lines, words = 0, 0
//		for line in f:lines() do
//			lines = lines + 1
//			words = words + count_words(line)
//		end
//		local size = f:seek("end")
//		f:close()
//		io.write(string.format("%7d %7d %7d %s\n", lines, words, size, arg[i]))
//		total = total + lines
//	end
//	if #arg > 1 then print(total, "total") end
package main

import (
	"os"

	lua "github.com/tsatke/luart"
)

var (
	// Version can be set with the Go linker.
	Version string = "master"
	// AppName is the name of this app, as displayed in the help
	// text of the root command.
	AppName = "linecount"
)

func main() {
	cmd := lua.NewCommand(AppName, chunk)
	cmd.Version = Version
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func chunk(e *lua.Engine, args ...lua.Value) ([]lua.Value, error) {
	io, err := e.Global("io")
	if err != nil {
		return nil, err
	}
	arg, err := e.Global("arg")
	if err != nil {
		return nil, err
	}
	n, err := e.Len(arg)
	if err != nil {
		return nil, err
	}

	var total lua.Value = lua.NewNumber(0)
	for i := 1.0; i <= float64(n.(lua.Number)); i++ {
		path, err := e.Index(arg, lua.NewNumber(i))
		if err != nil {
			return nil, err
		}
		lines, err := countFile(e, io, path)
		if err != nil {
			return nil, err
		}
		if total, err = e.Add(total, lines); err != nil {
			return nil, err
		}
	}

	more, err := e.Lt(lua.NewNumber(1), n)
	if err != nil {
		return nil, err
	}
	if more {
		print, err := e.Global("print")
		if err != nil {
			return nil, err
		}
		return e.Call(print, total, lua.NewString("total"))
	}
	return nil, nil
}

// countFile prints the counts for the file at path, and returns its line
// count.
func countFile(e *lua.Engine, io, path lua.Value) (lua.Value, error) {
	open, err := e.Index(io, lua.NewString("open"))
	if err != nil {
		return nil, err
	}
	opened, err := e.Call(open, path, lua.NewString("r"))
	if err != nil {
		return nil, err
	}
	f := lua.First(opened)

	iter, err := e.Apply(f, "lines")
	if err != nil {
		return nil, err
	}
	var lines, words lua.Value = lua.NewNumber(0), lua.NewNumber(0)
	for {
		line, err := e.Call(lua.First(iter))
		if err != nil {
			return nil, err
		}
		if lua.IsNil(lua.First(line)) {
			break
		}
		if lines, err = e.Add(lines, lua.NewNumber(1)); err != nil {
			return nil, err
		}
		w, err := countWords(e, lua.First(line))
		if err != nil {
			return nil, err
		}
		if words, err = e.Add(words, w); err != nil {
			return nil, err
		}
	}

	size, err := e.Apply(f, "seek", lua.NewString("end"))
	if err != nil {
		return nil, err
	}
	if _, err := e.Apply(f, "close"); err != nil {
		return nil, err
	}

	format, err := e.Index(e.Globals().Lookup(lua.NewString("string")), lua.NewString("format"))
	if err != nil {
		return nil, err
	}
	report, err := e.Call(format, lua.NewString("%7d %7d %7d %s\n"), lines, words, lua.First(size), path)
	if err != nil {
		return nil, err
	}
	write, err := e.Index(io, lua.NewString("write"))
	if err != nil {
		return nil, err
	}
	if _, err := e.Call(write, report...); err != nil {
		return nil, err
	}
	return lines, nil
}

// countWords counts the runs of non-blank bytes in line:
//
//	local function count_words(line)
//		local n, inword = 0, false
//		for i = 1, #line do
//			local c = line:byte(i)
//			local blank = c == 32 or c == 9 or c == 13
//			if not blank and not inword then n = n + 1 end
//			inword = not blank
//		end
//		return n
//	end
func countWords(e *lua.Engine, line lua.Value) (lua.Value, error) {
	length, err := e.Len(line)
	if err != nil {
		return nil, err
	}
	var n lua.Value = lua.NewNumber(0)
	inword := false
	for i := 1.0; i <= float64(length.(lua.Number)); i++ {
		b, err := e.Apply(line, "byte", lua.NewNumber(i))
		if err != nil {
			return nil, err
		}
		c := lua.First(b)
		blank := false
		for _, code := range []float64{32, 9, 13} {
			eq, err := e.Eq(c, lua.NewNumber(code))
			if err != nil {
				return nil, err
			}
			blank = blank || eq
		}
		if !blank && !inword {
			if n, err = e.Add(n, lua.NewNumber(1)); err != nil {
				return nil, err
			}
		}
		inword = !blank
	}
	return n, nil
}
