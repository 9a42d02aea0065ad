package lua

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tsatke/luart/internal/config"
)

// NewCommand creates the command line entry point of a translated program.
// Positional arguments become the program's arg table and varargs. The run
// configuration is read from the file given with --config, or from
// config.DefaultFile if it exists. Options given here are applied after the
// configuration, and override it.
func NewCommand(name string, chunk Chunk, opts ...Option) *cobra.Command {
	var configFile string
	var seed int64

	cmd := &cobra.Command{
		Use:           name + " [args...]",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, name, chunk, configFile, seed, args, opts)
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", name, err)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "run configuration file (default "+config.DefaultFile+")")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for math.random")
	return cmd
}

func run(cmd *cobra.Command, name string, chunk Chunk, configFile string, seed int64, args []string, opts []Option) error {
	osFs := afero.NewOsFs()

	var cfg config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(osFs, configFile)
	} else {
		cfg, err = config.LoadOptional(osFs, config.DefaultFile)
	}
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = &seed
	}

	engineOpts := []Option{
		WithStdin(cmd.InOrStdin()),
		WithStdout(cmd.OutOrStdout()),
		WithArgv(append([]string{os.Args[0], name}, args...)),
	}
	engineOpts = append(engineOpts, configOptions(osFs, cfg)...)
	engineOpts = append(engineOpts, opts...)

	_, err = Run(chunk, engineOpts...)
	return err
}

func configOptions(fs afero.Fs, cfg config.Config) []Option {
	var opts []Option
	if cfg.Root != "" {
		opts = append(opts, WithFs(afero.NewBasePathFs(fs, cfg.Root)))
	}
	if cfg.MaxStackSize > 0 {
		opts = append(opts, WithMaxStackSize(cfg.MaxStackSize))
	}
	if cfg.Seed != nil {
		opts = append(opts, WithRandomSeed(*cfg.Seed))
	}
	return opts
}

// Main runs the command of a translated program and exits the process with
// status 1 if the program fails.
func Main(name string, chunk Chunk, opts ...Option) {
	if err := NewCommand(name, chunk, opts...).Execute(); err != nil {
		os.Exit(1)
	}
}
