// Package config loads the run configuration of a translated program.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file that is loaded if none is given
// explicitly. It is optional.
const DefaultFile = ".luart.yml"

// Config is a run configuration.
type Config struct {
	// Root is the directory that file access of the program is confined
	// to. An empty root means the working directory, without confinement.
	Root string `yaml:"root"`
	// MaxStackSize limits the call depth. Zero keeps the runtime's default.
	MaxStackSize int `yaml:"max_stack_size"`
	// Seed seeds the random source. If it is nil, the source is seeded
	// from the clock.
	Seed *int64 `yaml:"seed"`
}

// ValidationError aggregates all problems of a configuration.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads the configuration at path from fs. Unknown fields are an
// error. An empty file is an empty configuration.
func Load(fs afero.Fs, path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("config: empty path")
	}
	file, err := fs.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(fs); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOptional is like Load, but a missing file yields an empty
// configuration.
func LoadOptional(fs afero.Fs, path string) (Config, error) {
	cfg, err := Load(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

func (c Config) validate(fs afero.Fs) error {
	var errs ValidationError
	if c.MaxStackSize < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_stack_size must not be negative, got %d", c.MaxStackSize))
	}
	if c.Root != "" {
		isDir, err := afero.IsDir(fs, c.Root)
		switch {
		case err != nil:
			errs.Issues = append(errs.Issues, fmt.Sprintf("root %s: %v", c.Root, err))
		case !isDir:
			errs.Issues = append(errs.Issues, fmt.Sprintf("root %s is not a directory", c.Root))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
