package app

import (
	"fmt"
	"log/slog"

	"github.com/five82/pokedex/internal/catalog"
	"github.com/five82/pokedex/internal/config"
	"github.com/five82/pokedex/internal/diag"
	"github.com/five82/pokedex/internal/pokeapi"
	"github.com/five82/pokedex/internal/state"
)

// Runtime holds the components shared by the TUI, the CLI commands and the
// JSON server.
type Runtime struct {
	Config config.Config
	Logger *slog.Logger
	Client *pokeapi.Client
	Loader *catalog.Loader
	Store  *state.Store

	closeLog func() error
}

// NewRuntime opens the log file and builds the client, loader and store from
// cfg. Close must be called to release the log file.
func NewRuntime(cfg config.Config) (*Runtime, error) {
	logger, closeLog, err := diag.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	rt, err := newRuntime(cfg, logger)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	rt.closeLog = closeLog
	return rt, nil
}

func newRuntime(cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	var opts []pokeapi.Option
	if cfg.RequestTimeout > 0 {
		opts = append(opts, pokeapi.WithTimeout(cfg.RequestTimeout))
	}
	client, err := pokeapi.NewClient(cfg.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("init pokeapi client: %w", err)
	}

	loader := catalog.NewLoader(client,
		catalog.WithIndexLimit(cfg.IndexLimit),
		catalog.WithConcurrency(cfg.FetchConcurrency),
	)

	return &Runtime{
		Config: cfg,
		Logger: logger,
		Client: client,
		Loader: loader,
		Store:  &state.Store{},
	}, nil
}

// Close releases the log file.
func (r *Runtime) Close() error {
	if r == nil || r.closeLog == nil {
		return nil
	}
	return r.closeLog()
}
