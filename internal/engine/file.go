package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	. "github.com/tsatke/luart/internal/engine/value"
)

// readHandle is a file opened for reading. Its whole content is loaded when
// it is opened; reads only move the cursor.
type readHandle struct {
	path   string
	data   []byte
	pos    int
	closed bool
}

func (h *readHandle) ReadByte() (byte, error) {
	if h.pos >= len(h.data) {
		return 0, io.EOF
	}
	c := h.data[h.pos]
	h.pos++
	return c, nil
}

func (h *readHandle) UnreadByte() error {
	if h.pos == 0 {
		return fmt.Errorf("unread at start of %s", h.path)
	}
	h.pos--
	return nil
}

// writeHandle is a file opened for writing. Writes only collect fragments;
// the file is written once, on close.
type writeHandle struct {
	fs     afero.Fs
	path   string
	parts  []string
	closed bool
}

func (h *writeHandle) write(s string) {
	h.parts = append(h.parts, s)
}

func (h *writeHandle) close() error {
	h.closed = true
	return afero.WriteFile(h.fs, h.path, []byte(strings.Join(h.parts, "")), 0644)
}

// openFile opens path for reading if mode contains "r", or for writing if
// it contains "w". Any other mode is an UnsupportedMode failure.
func (e *Engine) openFile(path, mode string) (*Userdata, error) {
	switch {
	case strings.Contains(mode, "r"):
		data, err := afero.ReadFile(e.fs, path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		e.log.Debug("opened file for reading", "path", path, "bytes", len(data))
		return NewUserdata(&readHandle{path: path, data: data}, e.fileMeta), nil
	case strings.Contains(mode, "w"):
		e.log.Debug("opened file for writing", "path", path)
		return NewUserdata(&writeHandle{fs: e.fs, path: path}, e.fileMeta), nil
	}
	return nil, RuntimeError{Kind: KindUnsupportedMode, Msg: fmt.Sprintf("file mode: %s", mode)}
}

func (e *Engine) fileMetatable() *Table {
	methods := library(
		libFunc{"close", e.fileClose},
		libFunc{"lines", e.fileLines},
		libFunc{"read", e.fileRead},
		libFunc{"seek", e.fileSeek},
		libFunc{"write", e.fileWrite},
	)
	mt := NewTable()
	mt.Set(NewString("__index"), methods)
	mt.Set(NewString("__name"), NewString("FILE*"))
	mt.Set(NewString("__tostring"), NewFunction("tostring", func(args ...Value) ([]Value, error) {
		u, _ := arg(args, 0).(*Userdata)
		if u != nil {
			switch h := u.Data.(type) {
			case *readHandle:
				if h.closed {
					return values(NewString("file (closed)")), nil
				}
			case *writeHandle:
				if h.closed {
					return values(NewString("file (closed)")), nil
				}
			}
		}
		return values(NewString(fmt.Sprintf("file (%p)", u))), nil
	}))
	return mt
}

func (e *Engine) checkFile(fn string, args []Value) (interface{}, error) {
	u, ok := arg(args, 0).(*Userdata)
	if !ok || u.Metatable != e.fileMeta {
		return nil, badArgument(1, fn, "FILE* expected, got "+argTypeName(args, 0))
	}
	switch h := u.Data.(type) {
	case *readHandle:
		if h.closed {
			return nil, typeMismatch("attempt to use a closed file")
		}
	case *writeHandle:
		if h.closed {
			return nil, typeMismatch("attempt to use a closed file")
		}
	}
	return u.Data, nil
}

func (e *Engine) checkReadHandle(fn string, args []Value) (*readHandle, error) {
	h, err := e.checkFile(fn, args)
	if err != nil {
		return nil, err
	}
	r, ok := h.(*readHandle)
	if !ok {
		return nil, typeMismatch("file not opened for reading")
	}
	return r, nil
}

func (e *Engine) fileRead(args ...Value) ([]Value, error) {
	h, err := e.checkReadHandle("read", args)
	if err != nil {
		return nil, err
	}
	return readAllFormats(h, args[1:])
}

// readAllFormats reads one value per format; the default format is
// "*line". Reading stops at the first format that yields nil.
func readAllFormats(src io.ByteScanner, formats []Value) ([]Value, error) {
	if len(formats) == 0 {
		formats = values(NewString("*line"))
	}
	results := make([]Value, 0, len(formats))
	for _, format := range formats {
		val, err := readFormat(src, format)
		if err != nil {
			return nil, err
		}
		results = append(results, val)
		if IsNil(val) {
			break
		}
	}
	return results, nil
}

func (e *Engine) fileLines(args ...Value) ([]Value, error) {
	h, err := e.checkReadHandle("lines", args)
	if err != nil {
		return nil, err
	}
	formats := args[1:]
	iter := NewFunction("lines_iterator", func(...Value) ([]Value, error) {
		if h.closed {
			return nil, typeMismatch("file is already closed")
		}
		return readAllFormats(h, formats)
	})
	return values(iter), nil
}

// fileSeek moves the cursor of a read handle and returns the new position.
func (e *Engine) fileSeek(args ...Value) ([]Value, error) {
	h, err := e.checkReadHandle("seek", args)
	if err != nil {
		return nil, err
	}
	whence, err := optString("seek", args, 1, "cur")
	if err != nil {
		return nil, err
	}
	offset, err := optInteger("seek", args, 2, 0)
	if err != nil {
		return nil, err
	}

	var base int64
	switch whence {
	case "set":
		base = 0
	case "cur":
		base = int64(h.pos)
	case "end":
		base = int64(len(h.data))
	default:
		return nil, badArgument(2, "seek", "invalid option '"+whence+"'")
	}
	pos := base + offset
	if pos < 0 {
		return values(Nil, NewString("Invalid argument")), nil
	}
	if pos > int64(len(h.data)) {
		pos = int64(len(h.data))
	}
	h.pos = int(pos)
	return values(NewNumber(float64(pos))), nil
}

func (e *Engine) fileWrite(args ...Value) ([]Value, error) {
	h, err := e.checkFile("write", args)
	if err != nil {
		return nil, err
	}
	w, ok := h.(*writeHandle)
	if !ok {
		return nil, typeMismatch("file not opened for writing")
	}
	for i := 1; i < len(args); i++ {
		s, err := checkString("write", args, i)
		if err != nil {
			return nil, err
		}
		w.write(s)
	}
	return values(args[0]), nil
}

func (e *Engine) fileClose(args ...Value) ([]Value, error) {
	h, err := e.checkFile("close", args)
	if err != nil {
		return nil, err
	}
	switch f := h.(type) {
	case *readHandle:
		f.closed = true
		e.log.Debug("closed file", "path", f.path)
	case *writeHandle:
		if err := f.close(); err != nil {
			return nil, fmt.Errorf("close %s: %w", f.path, err)
		}
		e.log.Debug("closed file", "path", f.path, "fragments", len(f.parts))
	}
	return values(True), nil
}
