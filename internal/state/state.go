// Package state persists the most recent pipeline run so deploy,
// predict, teardown and status work as separate commands.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	currentVersion = 1
	stateFileName  = "mlpipe_state.json"
)

// Run records everything later commands need to pick up where a
// previous command stopped. The test subset itself is never stored:
// the seeded split re-derives it from Seed and the two ratios.
type Run struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DatasetURL      string  `json:"dataset_url"`
	Seed            int64   `json:"seed"`
	TestRatio       float64 `json:"test_ratio"`
	ValidationRatio float64 `json:"validation_ratio"`

	TrainURI      string `json:"train_uri,omitempty"`
	ValidationURI string `json:"validation_uri,omitempty"`

	JobName     string `json:"job_name,omitempty"`
	ArtifactURI string `json:"artifact_uri,omitempty"`

	EndpointName string `json:"endpoint_name,omitempty"`
}

type file struct {
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
	LastRun   *Run      `json:"last_run"`
}

// Store reads and writes the state file under a directory.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// Load returns the last recorded run, or nil when no state exists yet.
func (s *Store) Load() (*Run, error) {
	path := filepath.Join(s.dir, stateFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading state file %s: %w", path, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", path, err)
	}

	if f.Version != currentVersion {
		return nil, fmt.Errorf("state file %s has unsupported version %d", path, f.Version)
	}

	return f.LastRun, nil
}

// Save records run as the last run, replacing any previous one.
func (s *Store) Save(run *Run) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating state dir %s: %w", s.dir, err)
	}

	run.UpdatedAt = time.Now()
	f := file{
		Version:   currentVersion,
		UpdatedAt: run.UpdatedAt,
		LastRun:   run,
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	path := filepath.Join(s.dir, stateFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing state file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing state file %s: %w", path, err)
	}

	return nil
}
