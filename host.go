package lua

import (
	"github.com/tsatke/luart/internal/engine"
	"github.com/tsatke/luart/internal/host"
)

// newHost creates the default host bridge, which exposes the Go process.
func newHost(cfg engine.HostConfig) engine.HostBridge {
	modules := make(map[string]host.Loader, len(cfg.Modules))
	for name, load := range cfg.Modules {
		modules[name] = host.Loader(load)
	}
	return host.New(host.Config{
		Call:    cfg.Call,
		Fs:      cfg.Fs,
		Modules: modules,
		Globals: cfg.Globals,
		Log:     cfg.Log,
	})
}
