package engine

import (
	"errors"
	"log/slog"

	"github.com/spf13/afero"
	. "github.com/tsatke/luart/internal/engine/value"
)

// ErrNoHost is returned by host.new and host.import on an engine without a
// host bridge.
var ErrNoHost = errors.New("no host bridge")

// HostBridge is the escape hatch from translated code to the host. It is the
// only place where the runtime touches host specifics, apart from storage
// and output.
type HostBridge interface {
	// Global returns the host's ambient global object.
	Global() Value
	// New constructs a host object from a constructor-like value.
	New(ctor Value, args ...Value) (Value, error)
	// Import loads a host module or resource by name.
	Import(name string) (Value, error)
}

// ModuleLoader loads the host module with the given name.
type ModuleLoader func(name string) (Value, error)

// HostConfig is the part of an engine that a host bridge may use.
type HostConfig struct {
	// Call invokes a callable value through the engine's call protocol.
	Call    func(fn Value, args ...Value) ([]Value, error)
	Fs      afero.Fs
	Modules map[string]ModuleLoader
	Globals map[string]Value
	Log     *slog.Logger
}

// HostFactory creates the host bridge of an engine.
type HostFactory func(cfg HostConfig) HostBridge

type noHost struct{}

func (noHost) Global() Value { return NewTable() }

func (noHost) New(Value, ...Value) (Value, error) { return nil, ErrNoHost }

func (noHost) Import(string) (Value, error) { return nil, ErrNoHost }

func (e *Engine) hostLibrary() *Table {
	lib := library(
		libFunc{"import", e.hostImport},
		libFunc{"new", e.hostNew},
	)
	lib.Set(NewString("global"), e.host.Global())
	return lib
}

func (e *Engine) hostNew(args ...Value) ([]Value, error) {
	ctor, err := checkAny("new", args, 0)
	if err != nil {
		return nil, err
	}
	obj, err := e.host.New(ctor, args[1:]...)
	if err != nil {
		return nil, err
	}
	return values(obj), nil
}

func (e *Engine) hostImport(args ...Value) ([]Value, error) {
	name, err := checkString("import", args, 0)
	if err != nil {
		return nil, err
	}
	mod, err := e.host.Import(name)
	if err != nil {
		return nil, err
	}
	return values(mod), nil
}
