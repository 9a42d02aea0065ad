package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	. "github.com/tsatke/luart/internal/engine/value"
)

// directive is one parsed %-directive of a format string.
type directive struct {
	flags     string
	width     string
	precision string // including the leading '.', if any
	verb      byte
}

func (d directive) spec(verb byte) string {
	return "%" + d.flags + d.width + d.precision + string(verb)
}

func (d directive) prec() int {
	if d.precision == "" {
		return -1
	}
	p, _ := strconv.Atoi(d.precision[1:])
	return p
}

// parseDirective parses the directive that starts after a '%' at the
// beginning of s. It returns the directive and the amount of bytes consumed.
func parseDirective(s string) (directive, int, bool) {
	var d directive
	i := 0
	for i < len(s) && strings.IndexByte("-+ #0", s[i]) >= 0 {
		i++
	}
	d.flags = s[:i]
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	d.width = s[start:i]
	if i < len(s) && s[i] == '.' {
		start = i
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		d.precision = s[start:i]
	}
	if i >= len(s) {
		return d, i, false
	}
	d.verb = s[i]
	return d, i + 1, true
}

// strFormat implements string.format. Every directive consumes exactly one
// argument, in order, no matter what width or precision it carries.
func (e *Engine) strFormat(args ...Value) ([]Value, error) {
	format, err := checkString("format", args, 0)
	if err != nil {
		return nil, err
	}

	var out strings.Builder
	argIndex := 1
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			out.WriteByte(c)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			out.WriteByte('%')
			i++
			continue
		}

		d, n, ok := parseDirective(format[i+1:])
		if !ok {
			return nil, typeMismatch("invalid conversion '%s' to 'format'", format[i:])
		}
		i += n

		if argIndex >= len(args) {
			return nil, badArgument(argIndex+1, "format", "no value")
		}
		rendered, err := e.formatDirective(d, args, argIndex)
		if err != nil {
			return nil, err
		}
		out.WriteString(rendered)
		argIndex++
	}
	return values(NewString(out.String())), nil
}

func (e *Engine) formatDirective(d directive, args []Value, i int) (string, error) {
	switch d.verb {
	case 'd', 'i':
		f, err := checkNumber("format", args, i)
		if err != nil {
			return "", err
		}
		if !fitsInteger(f) {
			return "", badArgument(i+1, "format", "number has no integer representation")
		}
		// truncate toward zero, not round
		return fmt.Sprintf(d.spec('d'), int64(f)), nil
	case 'b', 'o', 'x', 'X':
		f, err := checkNumber("format", args, i)
		if err != nil {
			return "", err
		}
		if !fitsInteger(f) {
			return "", badArgument(i+1, "format", "number has no integer representation")
		}
		return fmt.Sprintf(d.spec(d.verb), uint64(int64(f))), nil
	case 'c':
		f, err := checkNumber("format", args, i)
		if err != nil {
			return "", err
		}
		if f < 0 || f > utf8.MaxRune || math.IsNaN(f) {
			return "", badArgument(i+1, "format", "value out of range")
		}
		r := rune(f)
		if !utf8.ValidRune(r) {
			return "", badArgument(i+1, "format", "value out of range")
		}
		return fmt.Sprintf("%"+d.flags+d.width+"c", r), nil
	case 's':
		s, err := e.tostringValue(arg(args, i))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(d.spec('s'), s), nil
	case 'f', 'F', 'e', 'E':
		f, err := checkNumber("format", args, i)
		if err != nil {
			return "", err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return d.pad(nonFinite(f, d.verb == 'F' || d.verb == 'E')), nil
		}
		verb := d.verb
		if verb == 'F' {
			verb = 'f'
		}
		return fmt.Sprintf(d.spec(verb), f), nil
	case 'g', 'G':
		f, err := checkNumber("format", args, i)
		if err != nil {
			return "", err
		}
		upper := d.verb == 'G'
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return d.pad(nonFinite(f, upper)), nil
		}
		return d.pad(shortestFloat(f, d.prec(), upper)), nil
	}
	return "", typeMismatch("invalid conversion '%s' to 'format'", d.spec(d.verb))
}

// shortestFloat renders f in fixed point and in exponential notation and
// returns the shorter one. On a tie, the exponential form wins.
func shortestFloat(f float64, prec int, upper bool) string {
	fixed := strconv.FormatFloat(f, 'f', prec, 64)
	exp := strconv.FormatFloat(f, 'e', prec, 64)
	result := exp
	if len(fixed) < len(exp) {
		result = fixed
	}
	if upper {
		result = strings.ToUpper(result)
	}
	return result
}

func nonFinite(f float64, upper bool) string {
	s := numberToString(f)
	if upper {
		s = strings.ToUpper(s)
	}
	return s
}

// pad applies the sign flags and the width of d to an already rendered
// number.
func (d directive) pad(s string) string {
	if !strings.HasPrefix(s, "-") {
		switch {
		case strings.Contains(d.flags, "+"):
			s = "+" + s
		case strings.Contains(d.flags, " "):
			s = " " + s
		}
	}
	width, _ := strconv.Atoi(d.width)
	if len(s) >= width {
		return s
	}
	fill := width - len(s)
	switch {
	case strings.Contains(d.flags, "-"):
		return s + strings.Repeat(" ", fill)
	case strings.Contains(d.flags, "0") && !strings.ContainsAny(s, "ainfAINF"):
		sign := ""
		if s[0] == '-' || s[0] == '+' || s[0] == ' ' {
			sign, s = s[:1], s[1:]
		}
		return sign + strings.Repeat("0", fill) + s
	}
	return strings.Repeat(" ", fill) + s
}
