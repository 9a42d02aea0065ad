// Package host implements the default host bridge, which exposes the Go
// process to translated code.
package host

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/afero"
	"github.com/tsatke/luart/internal/engine/value"
)

// Loader loads the host module with the given name.
type Loader func(name string) (value.Value, error)

// Constructor can be wrapped in a Userdata and passed to Bridge.New.
type Constructor func(args ...value.Value) (value.Value, error)

type Config struct {
	// Call invokes a callable value through the runtime's call protocol.
	Call    func(fn value.Value, args ...value.Value) ([]value.Value, error)
	Fs      afero.Fs
	Modules map[string]Loader
	// Globals are added to the table returned by Global.
	Globals map[string]value.Value
	Log     *slog.Logger
}

// Bridge is the default host bridge.
type Bridge struct {
	call    func(fn value.Value, args ...value.Value) ([]value.Value, error)
	fs      afero.Fs
	modules map[string]Loader
	loaded  map[string]value.Value
	log     *slog.Logger

	globals map[string]value.Value
	global  *value.Table
}

func New(cfg Config) *Bridge {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Bridge{
		call:    cfg.Call,
		fs:      cfg.Fs,
		modules: cfg.Modules,
		loaded:  make(map[string]value.Value),
		log:     log,
		globals: cfg.Globals,
	}
}

// Global returns a table that describes the Go process: its environment,
// its command line, the platform and its pid, plus all registered globals.
func (b *Bridge) Global() value.Value {
	if b.global != nil {
		return b.global
	}

	env := value.NewTable()
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				env.Set(value.NewString(kv[:i]), value.NewString(kv[i+1:]))
				break
			}
		}
	}
	args := value.NewTable()
	for i, a := range os.Args {
		args.Set(value.NewNumber(float64(i+1)), value.NewString(a))
	}

	g := value.NewTable()
	g.Set(value.NewString("env"), env)
	g.Set(value.NewString("args"), args)
	g.Set(value.NewString("goos"), value.NewString(runtime.GOOS))
	g.Set(value.NewString("goarch"), value.NewString(runtime.GOARCH))
	g.Set(value.NewString("pid"), value.NewNumber(float64(os.Getpid())))
	for name, val := range b.globals {
		g.Set(value.NewString(name), val)
	}
	b.global = g
	return g
}

// New constructs an object. ctor may be a function, which is called, a table
// with a "new" method, which is called with the table as first argument, or
// a userdata wrapping a Constructor.
func (b *Bridge) New(ctor value.Value, args ...value.Value) (value.Value, error) {
	var results []value.Value
	var err error
	switch c := ctor.(type) {
	case *value.Function:
		results, err = b.call(c, args...)
	case *value.Table:
		newFn, ok := c.Get(value.NewString("new"))
		if !ok {
			return nil, fmt.Errorf("cannot construct from a table without 'new'")
		}
		results, err = b.call(newFn, append([]value.Value{c}, args...)...)
	case *value.Userdata:
		construct, ok := c.Data.(Constructor)
		if !ok {
			return nil, fmt.Errorf("cannot construct from userdata holding %T", c.Data)
		}
		obj, err := construct(args...)
		if err != nil {
			return nil, fmt.Errorf("construct: %w", err)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("cannot construct from a %s value", ctor.Type())
	}
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return value.Nil, nil
	}
	return results[0], nil
}

// Import resolves registered modules first and loads each of them only once.
// Any other name is read as a resource from the file system and returned as
// a string.
func (b *Bridge) Import(name string) (value.Value, error) {
	if mod, ok := b.loaded[name]; ok {
		return mod, nil
	}
	if loader, ok := b.modules[name]; ok {
		b.log.Debug("loading host module", "name", name)
		mod, err := loader(name)
		if err != nil {
			return nil, fmt.Errorf("load module '%s': %w", name, err)
		}
		if mod == nil {
			mod = value.True
		}
		b.loaded[name] = mod
		return mod, nil
	}

	if b.fs == nil {
		return nil, fmt.Errorf("module '%s' not found", name)
	}
	data, err := afero.ReadFile(b.fs, name)
	if err != nil {
		return nil, fmt.Errorf("module '%s' not found: %w", name, err)
	}
	b.log.Debug("loaded host resource", "name", name, "bytes", len(data))
	return value.NewString(string(data)), nil
}
