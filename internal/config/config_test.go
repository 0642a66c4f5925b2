package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}

	if cfg.Split.TestRatio != 0.33 || cfg.Split.ValidationRatio != 0.33 {
		t.Errorf("unexpected default split ratios: %g/%g", cfg.Split.TestRatio, cfg.Split.ValidationRatio)
	}
	if cfg.Split.Seed != 42 {
		t.Errorf("unexpected default seed: %d", cfg.Split.Seed)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("unexpected default storage backend: %q", cfg.Storage.Backend)
	}
	if cfg.Training.Hyperparameters.Objective != "reg:squarederror" {
		t.Errorf("unexpected default objective: %q", cfg.Training.Hyperparameters.Objective)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
split:
  test_ratio: 0.2
  validation_ratio: 0.25
  seed: 7
platform:
  base_url: http://platform.internal:8080
  poll_interval_ms: 500
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Split.TestRatio != 0.2 {
		t.Errorf("expected test_ratio 0.2, got %g", cfg.Split.TestRatio)
	}
	if cfg.Split.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Split.Seed)
	}
	if cfg.Platform.BaseURL != "http://platform.internal:8080" {
		t.Errorf("unexpected base_url: %q", cfg.Platform.BaseURL)
	}
	// Untouched sections keep their defaults.
	if cfg.Training.Hyperparameters.NumRound != 200 {
		t.Errorf("expected default num_round 200, got %d", cfg.Training.Hyperparameters.NumRound)
	}
	if cfg.Dataset.URL == "" {
		t.Error("expected default dataset url to survive the merge")
	}
}

func TestLoadFileNotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("split: [not a map"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
split:
  test_ratio: 1.5
platform:
  poll_interval_ms: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "test_ratio") {
		t.Errorf("error does not mention test_ratio: %v", err)
	}
	if !strings.Contains(err.Error(), "poll_interval_ms") {
		t.Errorf("error does not mention poll_interval_ms: %v", err)
	}
}

func TestLoadSubstitutesEnvVars(t *testing.T) {
	t.Setenv("MLPIPE_TEST_TOKEN", "secret-token")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
platform:
  token: ${MLPIPE_TEST_TOKEN}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Platform.Token != "secret-token" {
		t.Errorf("expected env-substituted token, got %q", cfg.Platform.Token)
	}
}

func TestSubstituteEnvVarsLeavesUnsetAlone(t *testing.T) {
	in := []byte("token: ${MLPIPE_DEFINITELY_UNSET_VAR}")
	out := substituteEnvVars(in)
	if string(out) != string(in) {
		t.Errorf("unset variable was rewritten: %q", out)
	}
}

func TestLoadOrDefault(t *testing.T) {
	if cfg := LoadOrDefault(""); cfg.Split.Seed != 42 {
		t.Errorf("empty path should yield defaults, got seed %d", cfg.Split.Seed)
	}

	if cfg := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml")); cfg == nil {
		t.Error("missing file should fall back to defaults, got nil")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("split:\n  seed: 9\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if cfg := LoadOrDefault(path); cfg.Split.Seed != 9 {
		t.Errorf("expected seed 9 from file, got %d", cfg.Split.Seed)
	}
}

func TestStorageValidation(t *testing.T) {
	cfg := Default()

	cfg.Storage = StorageConfig{Backend: "s3"}
	if err := cfg.Storage.Validate(); err == nil {
		t.Error("s3 backend without bucket/region should not validate")
	}

	cfg.Storage = StorageConfig{Backend: "s3", Bucket: "b", Region: "us-east-1"}
	if err := cfg.Storage.Validate(); err != nil {
		t.Errorf("s3 backend with bucket and region should validate: %v", err)
	}

	cfg.Storage = StorageConfig{Backend: "local"}
	if err := cfg.Storage.Validate(); err == nil {
		t.Error("local backend without local_dir should not validate")
	}

	cfg.Storage = StorageConfig{Backend: "gcs", LocalDir: "x"}
	if err := cfg.Storage.Validate(); err == nil {
		t.Error("unknown backend should not validate")
	}
}

func TestInferenceValidation(t *testing.T) {
	inf := Default().Inference

	inf.MaxPayloadBytes = 100
	if err := inf.Validate(); err == nil {
		t.Error("max_payload_bytes below 1024 should not validate")
	}

	inf.MaxPayloadBytes = 1024
	if err := inf.Validate(); err != nil {
		t.Errorf("max_payload_bytes 1024 should validate: %v", err)
	}
}

func TestLoggingValidation(t *testing.T) {
	l := LoggingConfig{Level: "verbose", Format: "text"}
	if err := l.Validate(); err == nil {
		t.Error("unknown level should not validate")
	}

	l = LoggingConfig{Level: "debug", Format: "xml"}
	if err := l.Validate(); err == nil {
		t.Error("unknown format should not validate")
	}

	l = LoggingConfig{Level: "warn", Format: "json"}
	if err := l.Validate(); err != nil {
		t.Errorf("warn/json should validate: %v", err)
	}
}
