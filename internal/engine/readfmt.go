package engine

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	. "github.com/tsatke/luart/internal/engine/value"
)

// readFormat reads one value from src, as described by format. The same
// vocabulary is used by io.read and by the read method of files:
//
//	"*all"    everything up to the end of input ("" at the end)
//	"*line"   the next line, without its newline (nil at the end)
//	"*L"      the next line, including its newline (nil at the end)
//	"*number" a decimal number
//	N         up to N bytes (nil at the end)
//
// The leading '*' is optional, and only the first letter of a format counts.
func readFormat(src io.ByteScanner, format Value) (Value, error) {
	if n, ok := format.(Number); ok {
		return readCount(src, byteCount(float64(n)))
	}
	f, ok := format.(String)
	if !ok {
		return nil, typeMismatch("bad argument to 'read' (invalid format)")
	}
	if n, err := strconv.ParseInt(strings.TrimSpace(string(f)), 10, 64); err == nil {
		return readCount(src, n)
	}

	mode := strings.TrimPrefix(string(f), "*")
	if mode == "" {
		return nil, typeMismatch("bad argument to 'read' (invalid format)")
	}
	switch mode[0] {
	case 'a':
		return readAll(src)
	case 'l':
		return readLine(src, false)
	case 'L':
		return readLine(src, true)
	case 'n':
		return readNumber(src)
	}
	return nil, typeMismatch("bad argument to 'read' (invalid format)")
}

func readAll(src io.ByteScanner) (Value, error) {
	var buf strings.Builder
	for {
		c, err := src.ReadByte()
		if err == io.EOF {
			return NewString(buf.String()), nil
		}
		if err != nil {
			return nil, err
		}
		buf.WriteByte(c)
	}
}

// readLine consumes the next newline, but only returns it if keep is set.
func readLine(src io.ByteScanner, keep bool) (Value, error) {
	var buf strings.Builder
	read := 0
	for {
		c, err := src.ReadByte()
		if err == io.EOF {
			if read == 0 {
				return Nil, nil
			}
			return NewString(buf.String()), nil
		}
		if err != nil {
			return nil, err
		}
		read++
		if c == '\n' {
			if keep {
				buf.WriteByte(c)
			}
			return NewString(buf.String()), nil
		}
		buf.WriteByte(c)
	}
}

// byteCount converts a numeric read format to a count. Counts beyond the
// int64 range read everything.
func byteCount(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= 1<<63:
		return math.MaxInt64
	case !fitsInteger(f):
		return 0
	}
	return int64(f)
}

// maxReadPrealloc is the largest count that readCount allocates up front.
const maxReadPrealloc = 4096

func readCount(src io.ByteScanner, n int64) (Value, error) {
	if n <= 0 {
		if _, err := src.ReadByte(); err != nil {
			return Nil, nil
		}
		_ = src.UnreadByte()
		return NewString(""), nil
	}

	var buf []byte
	if n <= maxReadPrealloc {
		buf = make([]byte, 0, n)
	}
	for int64(len(buf)) < n {
		c, err := src.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		buf = append(buf, c)
	}
	if len(buf) == 0 {
		return Nil, nil
	}
	return NewString(string(buf)), nil
}

// readNumber skips leading whitespace and then scans an optional sign,
// decimal digits and an optional fraction. The first byte that doesn't fit
// stays unread. Without at least one digit, this is a ReadFormat failure.
func readNumber(src io.ByteScanner) (Value, error) {
	c, err := src.ReadByte()
	for err == nil && isSpace(c) {
		c, err = src.ReadByte()
	}

	var buf strings.Builder
	digits := 0
	if err == nil && (c == '-' || c == '+') {
		buf.WriteByte(c)
		c, err = src.ReadByte()
	}
	for err == nil && c >= '0' && c <= '9' {
		buf.WriteByte(c)
		digits++
		c, err = src.ReadByte()
	}
	if err == nil && c == '.' && digits > 0 {
		buf.WriteByte(c)
		c, err = src.ReadByte()
		for err == nil && c >= '0' && c <= '9' {
			buf.WriteByte(c)
			c, err = src.ReadByte()
		}
	}
	if err == nil {
		_ = src.UnreadByte()
	} else if err != io.EOF {
		return nil, err
	}

	if digits == 0 {
		return nil, RuntimeError{Kind: KindReadFormat, Msg: fmt.Sprintf("read '*number': no digits in %q", buf.String())}
	}
	f, perr := strconv.ParseFloat(strings.TrimSuffix(buf.String(), "."), 64)
	if perr != nil {
		return nil, RuntimeError{Kind: KindReadFormat, Msg: fmt.Sprintf("read '*number': %v", perr)}
	}
	return NewNumber(f), nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
