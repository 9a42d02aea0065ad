package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	. "github.com/tsatke/luart/internal/engine/value"
)

// ToBoolean reports whether val is truthy. Only nil and false are falsy;
// 0 and the empty string are true.
func ToBoolean(val Value) bool {
	return !(val == nil || val == Nil || val == False)
}

// ToNumber converts val to a number the way arithmetic does: numbers are
// returned as they are, strings are parsed. ok is false if no conversion
// is possible.
func ToNumber(val Value) (float64, bool) {
	switch v := val.(type) {
	case Number:
		return float64(v), true
	case String:
		return parseNumber(string(v))
	}
	return 0, false
}

// ToInteger converts val to an integral number. Floats with a fractional
// part are not converted.
func ToInteger(val Value) (int64, bool) {
	f, ok := ToNumber(val)
	if !ok || f != math.Trunc(f) || !fitsInteger(f) {
		return 0, false
	}
	return int64(f), true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	body := s
	if body[0] == '-' || body[0] == '+' {
		neg = body[0] == '-'
		body = body[1:]
	}
	if len(body) > 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		if !strings.ContainsAny(body, ".pP") {
			u, err := strconv.ParseUint(body[2:], 16, 64)
			if err != nil {
				return 0, false
			}
			f := float64(int64(u))
			if neg {
				f = -f
			}
			return f, true
		}
		if !strings.ContainsAny(body, "pP") {
			body += "p0"
		}
	} else {
		// ParseFloat knows words and digit separators that we don't
		for _, c := range body {
			if !(c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' || c == '-' || c == '+') {
				return 0, false
			}
		}
	}

	f, err := strconv.ParseFloat(body, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return 0, false
		}
	}
	if neg {
		f = -f
	}
	return f, true
}

// ToString renders val without consulting metatables.
func ToString(val Value) string {
	switch v := val.(type) {
	case nil:
		return "nil"
	case String:
		return string(v)
	case Number:
		return numberToString(float64(v))
	case Boolean:
		return v.String()
	case *Function:
		if v.Name != "" {
			return "function: " + v.Name
		}
		return fmt.Sprintf("function: %p", v)
	case *Table:
		return fmt.Sprintf("table: %p", v)
	case *Userdata:
		return fmt.Sprintf("userdata: %p", v)
	}
	if val.Type() == TypeNil {
		return "nil"
	}
	return fmt.Sprintf("%v", val)
}

func numberToString(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	case f == math.Trunc(f) && math.Abs(f) < 1<<63:
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', 14, 64)
}

// stringish converts strings and numbers to their string form, as
// concatenation and the string library do.
func stringish(val Value) (string, bool) {
	switch v := val.(type) {
	case String:
		return string(v), true
	case Number:
		return numberToString(float64(v)), true
	}
	return "", false
}
