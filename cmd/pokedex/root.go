package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/app"
	"github.com/five82/pokedex/internal/config"
)

const defaultEnvFile = ".env"

// rootOptions holds the persistent flags and the config resolved from them.
type rootOptions struct {
	configPath  string
	prefsPath   string
	envFile     string
	baseURL     string
	concurrency int
	logFile     string
	verbose     bool

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "pokedex",
		Short:         "Browse the Pokémon catalog from the terminal",
		Long:          "pokedex loads the Pokémon catalog from PokeAPI and lets you search it, open full records and inspect its own diagnostics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Options{Config: opts.cfg, PrefsPath: opts.prefsPath})
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/pokedex/config.toml)")
	f.StringVar(&opts.prefsPath, "prefs", "", "UI preferences file (default ~/.config/pokedex/prefs.toml)")
	f.StringVar(&opts.envFile, "env-file", defaultEnvFile, "dotenv file with POKEDEX_* overrides")
	f.StringVar(&opts.baseURL, "base-url", "", "PokeAPI base URL")
	f.IntVar(&opts.concurrency, "concurrency", 0, "maximum in-flight catalog requests (0 = unbounded)")
	f.StringVar(&opts.logFile, "log-file", "", "diagnostics log file")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(newListCmd(opts), newShowCmd(opts), newServeCmd(opts))
	return cmd
}

// resolve layers flags over the config file and POKEDEX_* environment.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	if err := loadEnvFile(o.envFile, cmd.Flags().Changed("env-file")); err != nil {
		return err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("concurrency") {
		cfg.FetchConcurrency = o.concurrency
	}
	if flags.Changed("log-file") {
		path, err := config.ExpandPath(o.logFile)
		if err != nil {
			return fmt.Errorf("log-file: %w", err)
		}
		cfg.LogFile = path
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.cfg = cfg
	return nil
}

// loadEnvFile applies a dotenv file without overriding variables already set
// in the environment. A missing default file is not an error.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}
