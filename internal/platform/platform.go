// Package platform models the managed ML platform as capability
// interfaces: submit a training job, provision an inference endpoint,
// invoke it, terminate it. Any provider that can satisfy these four
// operations can sit behind the pipeline.
package platform

import "context"

// Platform is the remote side of the pipeline. All calls are
// synchronous from the caller's perspective; long-running operations
// are observed by polling.
type Platform interface {
	// SubmitTrainingJob starts an asynchronous remote training job.
	SubmitTrainingJob(ctx context.Context, spec TrainingSpec) (*TrainingJob, error)

	// GetTrainingJob reports the current state of a submitted job.
	GetTrainingJob(ctx context.Context, name string) (*TrainingJob, error)

	// TrainingLogs returns log lines starting at offset from, plus the
	// next offset to poll from. Logs are observability only; control
	// decisions come from job state.
	TrainingLogs(ctx context.Context, name string, from int) ([]string, int, error)

	// CreateEndpoint provisions an inference endpoint from a trained
	// artifact. Provisioning continues after the call returns.
	CreateEndpoint(ctx context.Context, spec EndpointSpec) (*Endpoint, error)

	// GetEndpoint reports the current state of an endpoint.
	GetEndpoint(ctx context.Context, name string) (*Endpoint, error)

	// Invoke sends feature rows to a serving endpoint and returns one
	// prediction per row, in request order.
	Invoke(ctx context.Context, name string, rows [][]float64) ([]float64, error)

	// DeleteEndpoint requests endpoint termination. Deleting an
	// endpoint that no longer exists succeeds.
	DeleteEndpoint(ctx context.Context, name string) error
}
