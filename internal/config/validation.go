package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Dataset.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("dataset: %w", err))
	}

	if err := c.Split.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("split: %w", err))
	}

	if err := c.Local.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("local: %w", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("storage: %w", err))
	}

	if err := c.Platform.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("platform: %w", err))
	}

	if err := c.Training.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("training: %w", err))
	}

	if err := c.Inference.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("inference: %w", err))
	}

	if err := c.DevServer.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("devserver: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

func (d *DatasetConfig) Validate() error {
	if d.URL == "" {
		return fmt.Errorf("url cannot be empty")
	}
	return nil
}

func (s *SplitConfig) Validate() error {
	var errs []error

	if s.TestRatio <= 0 || s.TestRatio >= 1 {
		errs = append(errs, fmt.Errorf("test_ratio must be in (0, 1), got %g", s.TestRatio))
	}

	if s.ValidationRatio <= 0 || s.ValidationRatio >= 1 {
		errs = append(errs, fmt.Errorf("validation_ratio must be in (0, 1), got %g", s.ValidationRatio))
	}

	return errors.Join(errs...)
}

func (l *LocalConfig) Validate() error {
	if l.WorkDir == "" {
		return fmt.Errorf("work_dir cannot be empty")
	}
	if l.StateDir == "" {
		return fmt.Errorf("state_dir cannot be empty")
	}
	return nil
}

func (s *StorageConfig) Validate() error {
	switch s.Backend {
	case "s3":
		if s.Bucket == "" {
			return fmt.Errorf("bucket is required for the s3 backend")
		}
		if s.Region == "" {
			return fmt.Errorf("region is required for the s3 backend")
		}
	case "local":
		if s.LocalDir == "" {
			return fmt.Errorf("local_dir is required for the local backend")
		}
	default:
		return fmt.Errorf("backend must be s3 or local, got %q", s.Backend)
	}
	return nil
}

func (p *PlatformConfig) Validate() error {
	if p.BaseURL == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	if p.PollIntervalMS < 100 {
		return fmt.Errorf("poll_interval_ms must be at least 100, got %d", p.PollIntervalMS)
	}
	return nil
}

func (t *TrainingConfig) Validate() error {
	var errs []error

	if err := t.Resources.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("resources: %w", err))
	}

	if err := t.Hyperparameters.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("hyperparameters: %w", err))
	}

	return errors.Join(errs...)
}

func (r *ResourcesConfig) Validate() error {
	if r.InstanceType == "" {
		return fmt.Errorf("instance_type cannot be empty")
	}
	if r.InstanceCount < 1 {
		return fmt.Errorf("instance_count must be at least 1, got %d", r.InstanceCount)
	}
	return nil
}

func (h *HyperparametersConfig) Validate() error {
	var errs []error

	if h.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max_depth must be at least 1"))
	}

	if h.Eta <= 0 || h.Eta > 1 {
		errs = append(errs, fmt.Errorf("eta must be in (0, 1]"))
	}

	if h.Subsample <= 0 || h.Subsample > 1 {
		errs = append(errs, fmt.Errorf("subsample must be in (0, 1]"))
	}

	if h.NumRound < 1 {
		errs = append(errs, fmt.Errorf("num_round must be at least 1"))
	}

	if h.Objective == "" {
		errs = append(errs, fmt.Errorf("objective cannot be empty"))
	}

	return errors.Join(errs...)
}

func (i *InferenceConfig) Validate() error {
	var errs []error

	if err := i.Resources.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("resources: %w", err))
	}

	if i.MaxPayloadBytes < 1024 {
		errs = append(errs, fmt.Errorf("max_payload_bytes must be at least 1024, got %d", i.MaxPayloadBytes))
	}

	return errors.Join(errs...)
}

func (d *DevServerConfig) Validate() error {
	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", d.Port)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be debug, info, warn or error, got %q", l.Level)
	}

	switch l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", l.Format)
	}

	return nil
}
