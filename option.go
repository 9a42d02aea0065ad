package lua

import (
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/tsatke/luart/internal/engine"
)

type Option = engine.Option

// Loader loads a host module for host.import.
type Loader = func(name string) (Value, error)

func WithStdin(stdin io.Reader) Option {
	return engine.WithStdin(stdin)
}

func WithStdout(stdout io.Writer) Option {
	return engine.WithStdout(stdout)
}

// WithWrite sets a function that receives all output, one or more complete
// lines at a time.
func WithWrite(write func(string)) Option {
	return engine.WithWrite(write)
}

// WithFs sets the file system that io.open and host.import work on.
func WithFs(fs afero.Fs) Option {
	return engine.WithFs(fs)
}

// WithArgv sets the command line. argv[1] is the script name and becomes
// arg[0], everything after it is passed to the chunk as varargs.
func WithArgv(argv []string) Option {
	return engine.WithArgv(argv)
}

func WithClock(clock Clock) Option {
	return engine.WithClock(clock)
}

func WithMaxStackSize(size int) Option {
	return engine.WithMaxStackSize(size)
}

func WithRandomSeed(seed int64) Option {
	return engine.WithRandomSeed(seed)
}

func WithHost(bridge HostBridge) Option {
	return engine.WithHost(bridge)
}

func WithModule(name string, loader Loader) Option {
	return engine.WithModule(name, loader)
}

// WithHostGlobal makes val available to translated code as host.global[name].
func WithHostGlobal(name string, val Value) Option {
	return engine.WithHostGlobal(name, val)
}

func WithLogger(log *slog.Logger) Option {
	return engine.WithLogger(log)
}
