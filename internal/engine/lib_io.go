package engine

import (
	. "github.com/tsatke/luart/internal/engine/value"
)

func (e *Engine) ioLibrary() *Table {
	e.fileMeta = e.fileMetatable()
	return library(
		libFunc{"close", e.ioClose},
		libFunc{"flush", e.ioFlush},
		libFunc{"open", e.ioOpen},
		libFunc{"read", e.ioRead},
		libFunc{"write", e.ioWrite},
	)
}

// ioWrite appends its arguments to the output. Output is passed on to the
// sink line by line, in the order it was written.
func (e *Engine) ioWrite(args ...Value) ([]Value, error) {
	for i := range args {
		s, err := checkString("write", args, i)
		if err != nil {
			return nil, err
		}
		e.out.WriteString(s)
	}
	return values(), nil
}

func (e *Engine) ioFlush(...Value) ([]Value, error) {
	e.out.Flush()
	return values(), nil
}

func (e *Engine) ioRead(args ...Value) ([]Value, error) {
	return readAllFormats(e.in, args)
}

func (e *Engine) ioOpen(args ...Value) ([]Value, error) {
	path, ok := arg(args, 0).(String)
	if !ok {
		return nil, badArgument(1, "open", "cannot open non-string path")
	}
	mode, err := optString("open", args, 1, "r")
	if err != nil {
		return nil, err
	}
	f, err := e.openFile(string(path), mode)
	if err != nil {
		return nil, err
	}
	return values(f), nil
}

func (e *Engine) ioClose(args ...Value) ([]Value, error) {
	if _, err := checkAny("close", args, 0); err != nil {
		return nil, err
	}
	return e.Apply(args[0], "close")
}
