package engine

import (
	"strings"

	. "github.com/tsatke/luart/internal/engine/value"
)

func (e *Engine) stringLibrary() *Table {
	return library(
		libFunc{"byte", e.strByte},
		libFunc{"char", e.strChar},
		libFunc{"format", e.strFormat},
		libFunc{"len", e.strLen},
		libFunc{"lower", e.strLower},
		libFunc{"rep", e.strRep},
		libFunc{"reverse", e.strReverse},
		libFunc{"sub", e.strSub},
		libFunc{"upper", e.strUpper},
	)
}

// strIndex translates a 1-based, possibly negative string position into a
// position in [0, len+1]. Negative positions count from the end.
func strIndex(pos int64, length int) int64 {
	if pos >= 0 {
		return pos
	}
	if -pos > int64(length) {
		return 0
	}
	return int64(length) + pos + 1
}

func (e *Engine) strLen(args ...Value) ([]Value, error) {
	s, err := checkString("len", args, 0)
	if err != nil {
		return nil, err
	}
	return values(NewNumber(float64(len(s)))), nil
}

// strSub returns the characters i through j, both inclusive.
func (e *Engine) strSub(args ...Value) ([]Value, error) {
	s, err := checkString("sub", args, 0)
	if err != nil {
		return nil, err
	}
	i, err := optInteger("sub", args, 1, 1)
	if err != nil {
		return nil, err
	}
	j, err := optInteger("sub", args, 2, -1)
	if err != nil {
		return nil, err
	}

	l := len(s)
	start, end := strIndex(i, l), strIndex(j, l)
	if start < 1 {
		start = 1
	}
	if end > int64(l) {
		end = int64(l)
	}
	if start > end {
		return values(NewString("")), nil
	}
	return values(NewString(s[start-1 : end])), nil
}

func (e *Engine) strByte(args ...Value) ([]Value, error) {
	s, err := checkString("byte", args, 0)
	if err != nil {
		return nil, err
	}
	i, err := optInteger("byte", args, 1, 1)
	if err != nil {
		return nil, err
	}
	j, err := optInteger("byte", args, 2, i)
	if err != nil {
		return nil, err
	}

	l := len(s)
	start, end := strIndex(i, l), strIndex(j, l)
	if start < 1 {
		start = 1
	}
	if end > int64(l) {
		end = int64(l)
	}
	codes := values()
	for p := start; p <= end; p++ {
		codes = append(codes, NewNumber(float64(s[p-1])))
	}
	return codes, nil
}

func (e *Engine) strChar(args ...Value) ([]Value, error) {
	buf := make([]byte, len(args))
	for i := range args {
		c, err := checkInteger("char", args, i)
		if err != nil {
			return nil, err
		}
		if c < 0 || c > 255 {
			return nil, badArgument(i+1, "char", "value out of range")
		}
		buf[i] = byte(c)
	}
	return values(NewString(string(buf))), nil
}

// maxStringSize limits the strings that string.rep builds.
const maxStringSize = 1 << 30

func (e *Engine) strRep(args ...Value) ([]Value, error) {
	s, err := checkString("rep", args, 0)
	if err != nil {
		return nil, err
	}
	n, err := checkInteger("rep", args, 1)
	if err != nil {
		return nil, err
	}
	sep, err := optString("rep", args, 2, "")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return values(NewString("")), nil
	}
	if int64(len(s)+len(sep)) > maxStringSize/n {
		return nil, typeMismatch("resulting string too large")
	}
	var b strings.Builder
	b.Grow(int(n)*len(s) + int(n-1)*len(sep))
	for i := int64(0); i < n; i++ {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s)
	}
	return values(NewString(b.String())), nil
}

func (e *Engine) strReverse(args ...Value) ([]Value, error) {
	s, err := checkString("reverse", args, 0)
	if err != nil {
		return nil, err
	}
	buf := []byte(s)
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return values(NewString(string(buf))), nil
}

// strUpper and strLower map ASCII letters only; other bytes are kept.
func (e *Engine) strUpper(args ...Value) ([]Value, error) {
	s, err := checkString("upper", args, 0)
	if err != nil {
		return nil, err
	}
	return values(NewString(mapASCII(s, 'a', 'z', 'A'-'a'))), nil
}

func (e *Engine) strLower(args ...Value) ([]Value, error) {
	s, err := checkString("lower", args, 0)
	if err != nil {
		return nil, err
	}
	return values(NewString(mapASCII(s, 'A', 'Z', 'a'-'A'))), nil
}

func mapASCII(s string, lo, hi byte, delta int) string {
	buf := []byte(s)
	for i, c := range buf {
		if c >= lo && c <= hi {
			buf[i] = byte(int(c) + delta)
		}
	}
	return string(buf)
}
