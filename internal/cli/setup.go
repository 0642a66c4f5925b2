package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/haskel/mlpipe/internal/config"
	"github.com/haskel/mlpipe/internal/logger"
	"github.com/haskel/mlpipe/internal/objectstore"
	"github.com/haskel/mlpipe/internal/pipeline"
	"github.com/haskel/mlpipe/internal/platform/rest"
	"github.com/haskel/mlpipe/internal/state"
)

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logger.New(level, cfg.Logging.Format)
}

func newPlatformClient(cfg *config.Config) *rest.Client {
	return rest.NewClient(
		cfg.Platform.BaseURL,
		cfg.Platform.Token,
		rest.WithMaxPayloadBytes(cfg.Inference.MaxPayloadBytes),
	)
}

func newPipeline(cfg *config.Config, log *slog.Logger) (*pipeline.Pipeline, *state.Store, error) {
	store, err := objectstore.New(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring object store: %w", err)
	}

	states := state.New(cfg.Local.StateDir)

	opts := []pipeline.Option{}
	if !jsonOut {
		opts = append(opts, pipeline.WithProgress(os.Stderr))
	}

	p := pipeline.New(cfg, store, newPlatformClient(cfg), states, log, opts...)
	return p, states, nil
}

// lastRun loads the recorded run or fails with a hint.
func lastRun(states *state.Store) (*state.Run, error) {
	run, err := states.Load()
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("no recorded run; start with \"mlpipe train\" or \"mlpipe run\"")
	}
	return run, nil
}
