package engine

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/spf13/afero"
	"github.com/tsatke/luart/internal/engine/value"
)

// DefaultMaxStackSize is the call depth limit of an engine that was created
// without WithMaxStackSize.
const DefaultMaxStackSize = 10000

// Chunk is a translated top-level unit. It receives the engine it runs in,
// and the command line arguments as varargs.
type Chunk func(e *Engine, args ...value.Value) ([]value.Value, error)

// Engine is one execution environment for translated code. It owns the
// global table, the output sink and all other per-run state. Engines share
// nothing, so multiple engines can run in the same process.
//
//	e := engine.New(engine.WithStdout(os.Stdout))
//	print, _ := e.Global("print")
//	_, err := e.Call(print, value.NewString("hi")) // prints 'hi'
//
// An Engine is not safe for concurrent use.
type Engine struct {
	fs afero.Fs

	// argv is the host command line. argv[0] is the runtime's invocation
	// token, argv[1] becomes arg[0].
	argv []string
	// stdin is the input for io.read. It is read through in.
	stdin io.Reader
	in    *bufio.Reader
	// write is the sink that receives all output. It is fed through out,
	// which coalesces writes into whole lines.
	write func(string)
	out   *lineWriter

	// clock is the clock that the engine will use if it requires a timestamp.
	clock Clock
	seed  *int64
	rand  *rand.Rand

	host        HostBridge
	newHost     HostFactory
	modules     map[string]ModuleLoader
	hostGlobals map[string]value.Value

	log *slog.Logger

	maxStackSize int
	stack        *callStack

	_G         *value.Table
	metaTables metaTables
	fileMeta   *value.Table
}

// New creates a new, ready to use Engine, already applying all given options.
// By default, the engine reads from os.Stdin, writes to os.Stdout, takes
// its arguments from os.Args and accesses the OS file system.
func New(opts ...Option) *Engine {
	e := &Engine{
		fs:           afero.NewOsFs(),
		argv:         os.Args,
		clock:        sysClock{},
		maxStackSize: DefaultMaxStackSize,
		modules:      make(map[string]ModuleLoader),
		hostGlobals:  make(map[string]value.Value),
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		stdin:        os.Stdin,
	}
	e.write = func(s string) {
		_, _ = os.Stdout.WriteString(s)
	}
	for _, opt := range opts {
		opt(e)
	}

	e.in = bufio.NewReader(e.stdin)
	e.out = newLineWriter(e.write)
	e.stack = newCallStack(e.maxStackSize)
	seed := e.clock.Now().UnixNano()
	if e.seed != nil {
		seed = *e.seed
	}
	e.rand = rand.New(rand.NewSource(seed))
	if e.host == nil && e.newHost != nil {
		e.host = e.newHost(HostConfig{
			Call:    e.Call,
			Fs:      e.fs,
			Modules: e.modules,
			Globals: e.hostGlobals,
			Log:     e.log,
		})
	}
	if e.host == nil {
		e.host = noHost{}
	}

	e.initMetatables()
	e.buildEnvironment()
	return e
}

// Globals returns the environment table. Assigning a global is a write
// into this table.
func (e *Engine) Globals() *value.Table {
	return e._G
}

// Global reads the global with the given name, following the same rules as
// indexing the environment table.
func (e *Engine) Global(name string) (value.Value, error) {
	return e.Index(e._G, value.NewString(name))
}

// SetGlobal assigns a global.
func (e *Engine) SetGlobal(name string, val value.Value) {
	e._G.Set(value.NewString(name), val)
}

// Run invokes the given chunk with the command line arguments following
// arg[0] as varargs, and flushes all pending output afterwards.
func (e *Engine) Run(chunk Chunk) ([]value.Value, error) {
	defer e.Flush()

	var args []value.Value
	if len(e.argv) > 2 {
		for _, a := range e.argv[2:] {
			args = append(args, value.NewString(a))
		}
	}

	main := value.NewFunction("main chunk", func(args ...value.Value) ([]value.Value, error) {
		return chunk(e, args...)
	})
	results, err := e.Call(main, args...)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Flush emits output that is still buffered because it doesn't end in a
// newline.
func (e *Engine) Flush() {
	e.out.Flush()
}

func (e *Engine) dumpState() string {
	var s string
	s += fmt.Sprintf("clock: %T\n", e.clock)
	s += "globals:\n"
	for k, v, _ := e._G.Next(value.Nil); !value.IsNil(k); k, v, _ = e._G.Next(k) {
		s += fmt.Sprintf("%-15s = %s\n", ToString(k), ToString(v))
	}
	return s
}
