package engine

import "strings"

// lineWriter coalesces output into whole lines. Complete lines are handed to
// the sink in the order they were written; a trailing partial line is kept
// until a later write completes it, or until Flush.
type lineWriter struct {
	sink    func(string)
	pending strings.Builder
}

func newLineWriter(sink func(string)) *lineWriter {
	return &lineWriter{
		sink: sink,
	}
}

func (w *lineWriter) WriteString(s string) {
	w.pending.WriteString(s)
	buffered := w.pending.String()
	cut := strings.LastIndexByte(buffered, '\n')
	if cut < 0 {
		return
	}
	w.pending.Reset()
	w.pending.WriteString(buffered[cut+1:])
	w.sink(buffered[:cut+1])
}

func (w *lineWriter) Flush() {
	if w.pending.Len() == 0 {
		return
	}
	rest := w.pending.String()
	w.pending.Reset()
	w.sink(rest)
}
