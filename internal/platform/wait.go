package platform

import (
	"context"
	"fmt"
	"time"
)

// WaitForTrainingJob blocks until the job reaches a terminal state,
// polling at interval and draining remote log lines into logf along
// the way. A failed job is reported as ErrTrainingFailed carrying the
// remote failure reason.
func WaitForTrainingJob(ctx context.Context, p Platform, name string, interval time.Duration, logf func(line string)) (*TrainingJob, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logOffset := 0
	for {
		job, err := p.GetTrainingJob(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("polling training job %s: %w", name, err)
		}

		if logf != nil {
			lines, next, err := p.TrainingLogs(ctx, name, logOffset)
			// Log streaming is best-effort; a failure here never
			// aborts the wait.
			if err == nil {
				for _, line := range lines {
					logf(line)
				}
				logOffset = next
			}
		}

		if job.State.Terminal() {
			if job.State == JobFailed {
				return nil, fmt.Errorf("%w: %s: %s", ErrTrainingFailed, name, job.FailureReason)
			}
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// WaitForEndpoint blocks until the endpoint is in service or failed.
func WaitForEndpoint(ctx context.Context, p Platform, name string, interval time.Duration) (*Endpoint, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ep, err := p.GetEndpoint(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("polling endpoint %s: %w", name, err)
		}

		if ep.State.Terminal() {
			if ep.State == EndpointFailed {
				return nil, fmt.Errorf("%w: %s: %s", ErrDeploymentFailed, name, ep.FailureReason)
			}
			return ep, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
