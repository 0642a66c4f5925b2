// Package pipeline drives the end-to-end sequence: fetch the dataset,
// split it, write the working CSVs, upload them, train, deploy, invoke
// and tear down. Every step is synchronous and nothing is retried; the
// first failure aborts the remaining steps.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"

	"github.com/haskel/mlpipe/internal/config"
	"github.com/haskel/mlpipe/internal/dataset"
	"github.com/haskel/mlpipe/internal/objectstore"
	"github.com/haskel/mlpipe/internal/platform"
	"github.com/haskel/mlpipe/internal/preflight"
	"github.com/haskel/mlpipe/internal/state"
)

const (
	trainFileName      = "train.csv"
	validationFileName = "validation.csv"
)

type Pipeline struct {
	cfg      *config.Config
	store    objectstore.Store
	platform platform.Platform
	states   *state.Store
	logger   *slog.Logger

	// progress, when set, renders upload progress bars to it.
	progress io.Writer
}

type Option func(*Pipeline)

// WithProgress enables upload progress bars on w.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) {
		p.progress = w
	}
}

func New(cfg *config.Config, store objectstore.Store, pf platform.Platform, states *state.Store, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		store:    store,
		platform: pf,
		states:   states,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// NewRun starts a fresh run record carrying the split parameters, so
// any later command can re-derive the exact same partition.
func (p *Pipeline) NewRun() *state.Run {
	return &state.Run{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now(),
		DatasetURL:      p.cfg.Dataset.URL,
		Seed:            p.cfg.Split.Seed,
		TestRatio:       p.cfg.Split.TestRatio,
		ValidationRatio: p.cfg.Split.ValidationRatio,
	}
}

// Prepare fetches the dataset, runs the preflight check, splits the
// records and writes the train and validation CSVs into the work dir.
func (p *Pipeline) Prepare(ctx context.Context, run *state.Run) (*dataset.Splits, error) {
	report, err := preflight.Check(p.cfg.Local.WorkDir, p.cfg.Local.MinFreeMB)
	if err != nil {
		return nil, fmt.Errorf("preflight: %w", err)
	}
	p.logger.Debug("preflight ok",
		"work_dir", report.WorkDir,
		"disk_free_mb", report.DiskFreeBytes/1024/1024,
	)

	records, err := dataset.Fetch(ctx, run.DatasetURL, p.cfg.Dataset.CacheDir)
	if err != nil {
		return nil, err
	}
	p.logger.Info("dataset loaded", "rows", len(records))

	splits, err := dataset.Split(records, run.TestRatio, run.ValidationRatio, run.Seed)
	if err != nil {
		return nil, fmt.Errorf("splitting dataset: %w", err)
	}
	p.logger.Info("dataset split",
		"train", len(splits.Train),
		"validation", len(splits.Validation),
		"test", len(splits.Test),
		"seed", run.Seed,
	)

	if err := dataset.WriteCSV(splits.Train, p.trainPath()); err != nil {
		return nil, err
	}
	if err := dataset.WriteCSV(splits.Validation, p.validationPath()); err != nil {
		return nil, err
	}

	return splits, nil
}

// ResolveSplits re-derives the partition a previous command produced,
// using the seed and ratios recorded on the run.
func (p *Pipeline) ResolveSplits(ctx context.Context, run *state.Run) (*dataset.Splits, error) {
	records, err := dataset.Fetch(ctx, run.DatasetURL, p.cfg.Dataset.CacheDir)
	if err != nil {
		return nil, err
	}
	return dataset.Split(records, run.TestRatio, run.ValidationRatio, run.Seed)
}

// Upload copies the two working CSVs into the object store and records
// their locators on the run.
func (p *Pipeline) Upload(ctx context.Context, run *state.Run) error {
	trainURI, err := p.uploadFile(ctx, p.trainPath(), "data/"+trainFileName)
	if err != nil {
		return err
	}

	validationURI, err := p.uploadFile(ctx, p.validationPath(), "data/"+validationFileName)
	if err != nil {
		return err
	}

	run.TrainURI = trainURI
	run.ValidationURI = validationURI
	p.logger.Info("training data uploaded", "train", trainURI, "validation", validationURI)

	return p.saveRun(run)
}

// Train submits the managed training job and blocks until it reaches a
// terminal state, mirroring the remote log stream into the local log.
func (p *Pipeline) Train(ctx context.Context, run *state.Run) error {
	if run.TrainURI == "" || run.ValidationURI == "" {
		return fmt.Errorf("run has no uploaded training data")
	}

	name := p.cfg.Training.JobNamePrefix + "-" + shortID(run.ID)
	spec := platform.TrainingSpec{
		Name:          name,
		TrainURI:      run.TrainURI,
		ValidationURI: run.ValidationURI,
		OutputURI:     p.store.URI("output/" + name),
		Hyperparameters: platform.Hyperparameters{
			MaxDepth:            p.cfg.Training.Hyperparameters.MaxDepth,
			Eta:                 p.cfg.Training.Hyperparameters.Eta,
			Gamma:               p.cfg.Training.Hyperparameters.Gamma,
			MinChildWeight:      p.cfg.Training.Hyperparameters.MinChildWeight,
			Subsample:           p.cfg.Training.Hyperparameters.Subsample,
			Objective:           p.cfg.Training.Hyperparameters.Objective,
			EarlyStoppingRounds: p.cfg.Training.Hyperparameters.EarlyStoppingRounds,
			NumRound:            p.cfg.Training.Hyperparameters.NumRound,
		},
		Resources: platform.Resources{
			InstanceType:  p.cfg.Training.Resources.InstanceType,
			InstanceCount: p.cfg.Training.Resources.InstanceCount,
		},
	}

	job, err := p.platform.SubmitTrainingJob(ctx, spec)
	if err != nil {
		return err
	}

	run.JobName = job.Name
	if err := p.saveRun(run); err != nil {
		return err
	}
	p.logger.Info("training job submitted", "job", job.Name)

	job, err = platform.WaitForTrainingJob(ctx, p.platform, job.Name, p.pollInterval(), func(line string) {
		p.logger.Info("training", "job", spec.Name, "log", line)
	})
	if err != nil {
		return err
	}

	run.ArtifactURI = job.ArtifactURI
	p.logger.Info("training completed", "job", job.Name, "artifact", job.ArtifactURI)

	return p.saveRun(run)
}

// Deploy provisions an inference endpoint from the run's artifact and
// blocks until it is in service. The caller owns the teardown.
func (p *Pipeline) Deploy(ctx context.Context, run *state.Run) error {
	if run.ArtifactURI == "" {
		return fmt.Errorf("run has no trained artifact")
	}

	name := p.cfg.Inference.EndpointNamePrefix + "-" + shortID(run.ID)
	spec := platform.EndpointSpec{
		Name:        name,
		ArtifactURI: run.ArtifactURI,
		Resources: platform.Resources{
			InstanceType:  p.cfg.Inference.Resources.InstanceType,
			InstanceCount: p.cfg.Inference.Resources.InstanceCount,
		},
	}

	ep, err := p.platform.CreateEndpoint(ctx, spec)
	if err != nil {
		return err
	}

	run.EndpointName = ep.Name
	if err := p.saveRun(run); err != nil {
		return err
	}
	p.logger.Info("endpoint provisioning", "endpoint", ep.Name)

	if _, err := platform.WaitForEndpoint(ctx, p.platform, ep.Name, p.pollInterval()); err != nil {
		return err
	}
	p.logger.Info("endpoint in service", "endpoint", ep.Name)

	return nil
}

// Predict sends the feature vectors of records to the run's endpoint
// and returns one prediction per record, in order.
func (p *Pipeline) Predict(ctx context.Context, run *state.Run, records []dataset.Record) ([]float64, error) {
	if run.EndpointName == "" {
		return nil, fmt.Errorf("run has no live endpoint")
	}

	rows := make([][]float64, len(records))
	for i, rec := range records {
		features := rec.Features
		rows[i] = features[:]
	}

	return p.platform.Invoke(ctx, run.EndpointName, rows)
}

// Teardown terminates the run's endpoint. Calling it when the endpoint
// is already gone is a no-op.
func (p *Pipeline) Teardown(ctx context.Context, run *state.Run) error {
	if run.EndpointName == "" {
		return nil
	}

	if err := p.platform.DeleteEndpoint(ctx, run.EndpointName); err != nil {
		return err
	}

	p.logger.Info("endpoint terminated", "endpoint", run.EndpointName)
	run.EndpointName = ""
	return p.saveRun(run)
}

func (p *Pipeline) uploadFile(ctx context.Context, path, key string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %w", dataset.ErrFilesystem, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: stat %s: %w", dataset.ErrFilesystem, path, err)
	}

	var body io.Reader = f
	if p.progress != nil {
		bar := pb.New64(info.Size())
		bar.Set(pb.Bytes, true)
		bar.SetWriter(p.progress)
		bar.Start()
		defer bar.Finish()
		body = bar.NewProxyReader(f)
	}

	return p.store.Put(ctx, key, body, info.Size())
}

func (p *Pipeline) saveRun(run *state.Run) error {
	if p.states == nil {
		return nil
	}
	return p.states.Save(run)
}

func (p *Pipeline) trainPath() string {
	return filepath.Join(p.cfg.Local.WorkDir, trainFileName)
}

func (p *Pipeline) validationPath() string {
	return filepath.Join(p.cfg.Local.WorkDir, validationFileName)
}

func (p *Pipeline) pollInterval() time.Duration {
	return time.Duration(p.cfg.Platform.PollIntervalMS) * time.Millisecond
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
