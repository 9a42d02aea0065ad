package engine

import (
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/tsatke/luart/internal/engine/value"
)

type Option func(*Engine)

func WithFs(fs afero.Fs) Option {
	return func(e *Engine) {
		e.fs = fs
	}
}

// WithArgv sets the host command line tokens the arg table is built from.
// argv[0] is the runtime's own invocation token.
func WithArgv(argv []string) Option {
	return func(e *Engine) {
		e.argv = argv
	}
}

func WithStdin(stdin io.Reader) Option {
	return func(e *Engine) {
		e.stdin = stdin
	}
}

// WithWrite sets the sink that receives all textual output.
func WithWrite(write func(string)) Option {
	return func(e *Engine) {
		e.write = write
	}
}

// WithStdout is like WithWrite, but writes into the given writer.
func WithStdout(stdout io.Writer) Option {
	return func(e *Engine) {
		e.write = func(s string) {
			_, _ = io.WriteString(stdout, s)
		}
	}
}

func WithClock(clock Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithMaxStackSize limits the call depth. Zero means unlimited.
func WithMaxStackSize(size int) Option {
	return func(e *Engine) {
		e.maxStackSize = size
	}
}

// WithRandomSeed seeds the random source of the math library, instead of
// seeding it from the clock.
func WithRandomSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = &seed
	}
}

// WithHost sets the host bridge. It takes precedence over WithHostFactory.
func WithHost(bridge HostBridge) Option {
	return func(e *Engine) {
		e.host = bridge
	}
}

// WithHostFactory sets the function that creates the host bridge once the
// engine is set up. Without a bridge, host.global is an empty table and
// host.new and host.import fail.
func WithHostFactory(factory HostFactory) Option {
	return func(e *Engine) {
		e.newHost = factory
	}
}

// WithModule registers a host module that translated code can load with
// host.import.
func WithModule(name string, loader ModuleLoader) Option {
	return func(e *Engine) {
		e.modules[name] = loader
	}
}

// WithHostGlobal adds a value to host.global. Like WithModule, it is handed
// to the HostFactory, and has no effect on a bridge set with WithHost.
func WithHostGlobal(name string, val value.Value) Option {
	return func(e *Engine) {
		e.hostGlobals[name] = val
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}
