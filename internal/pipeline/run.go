package pipeline

import (
	"context"

	"github.com/haskel/mlpipe/internal/dataset"
	"github.com/haskel/mlpipe/internal/state"
)

// Result summarizes a completed end-to-end run.
type Result struct {
	Run            *state.Run `json:"run"`
	TrainSize      int        `json:"train_size"`
	ValidationSize int        `json:"validation_size"`
	TestSize       int        `json:"test_size"`
	Predictions    []float64  `json:"predictions"`
	RMSE           float64    `json:"rmse"`
}

// Run executes the whole sequence: prepare, upload, train, deploy,
// predict, teardown. The endpoint is scoped to this call: once
// provisioning has been requested, teardown runs on every exit path,
// so a failed prediction never leaks billed compute.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	run := p.NewRun()

	splits, err := p.Prepare(ctx, run)
	if err != nil {
		return nil, err
	}

	if err := p.Upload(ctx, run); err != nil {
		return nil, err
	}

	if err := p.Train(ctx, run); err != nil {
		return nil, err
	}

	// From here on the endpoint may exist remotely, even if Deploy
	// itself fails partway. Teardown must survive ctx cancellation.
	defer func() {
		if err := p.Teardown(context.WithoutCancel(ctx), run); err != nil {
			p.logger.Error("endpoint teardown failed; remote compute may still be billed",
				"endpoint", run.EndpointName, "error", err)
		}
	}()

	if err := p.Deploy(ctx, run); err != nil {
		return nil, err
	}

	predictions, err := p.Predict(ctx, run, splits.Test)
	if err != nil {
		return nil, err
	}

	return &Result{
		Run:            run,
		TrainSize:      len(splits.Train),
		ValidationSize: len(splits.Validation),
		TestSize:       len(splits.Test),
		Predictions:    predictions,
		RMSE:           dataset.RMSE(predictions, splits.Test),
	}, nil
}
