package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/haskel/mlpipe/internal/platform"
)

// logsResponse is the wire shape of GET .../logs.
type logsResponse struct {
	Lines []string `json:"lines"`
	Next  int      `json:"next"`
}

func (c *Client) SubmitTrainingJob(ctx context.Context, spec platform.TrainingSpec) (*platform.TrainingJob, error) {
	data, status, err := c.postJSON(ctx, "/v1/training-jobs", spec)
	if err != nil {
		return nil, fmt.Errorf("submitting training job: %w", err)
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("%w: submit returned status %d: %s", platform.ErrTrainingFailed, status, data)
	}

	var job platform.TrainingJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parsing training job response: %w", err)
	}
	return &job, nil
}

func (c *Client) GetTrainingJob(ctx context.Context, name string) (*platform.TrainingJob, error) {
	data, status, err := c.get(ctx, "/v1/training-jobs/"+name)
	if err != nil {
		return nil, fmt.Errorf("fetching training job %s: %w", name, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("training job %s: status %d: %s", name, status, data)
	}

	var job platform.TrainingJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parsing training job %s: %w", name, err)
	}
	return &job, nil
}

func (c *Client) TrainingLogs(ctx context.Context, name string, from int) ([]string, int, error) {
	data, status, err := c.get(ctx, fmt.Sprintf("/v1/training-jobs/%s/logs?from=%d", name, from))
	if err != nil {
		return nil, from, fmt.Errorf("fetching logs for %s: %w", name, err)
	}
	if status != http.StatusOK {
		return nil, from, fmt.Errorf("logs for %s: status %d", name, status)
	}

	var resp logsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, from, fmt.Errorf("parsing logs for %s: %w", name, err)
	}
	return resp.Lines, resp.Next, nil
}

func (c *Client) CreateEndpoint(ctx context.Context, spec platform.EndpointSpec) (*platform.Endpoint, error) {
	data, status, err := c.postJSON(ctx, "/v1/endpoints", spec)
	if err != nil {
		return nil, fmt.Errorf("creating endpoint: %w", err)
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("%w: create returned status %d: %s", platform.ErrDeploymentFailed, status, data)
	}

	var ep platform.Endpoint
	if err := json.Unmarshal(data, &ep); err != nil {
		return nil, fmt.Errorf("parsing endpoint response: %w", err)
	}
	return &ep, nil
}

func (c *Client) GetEndpoint(ctx context.Context, name string) (*platform.Endpoint, error) {
	data, status, err := c.get(ctx, "/v1/endpoints/"+name)
	if err != nil {
		return nil, fmt.Errorf("fetching endpoint %s: %w", name, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("endpoint %s: status %d: %s", name, status, data)
	}

	var ep platform.Endpoint
	if err := json.Unmarshal(data, &ep); err != nil {
		return nil, fmt.Errorf("parsing endpoint %s: %w", name, err)
	}
	return &ep, nil
}

// DeleteEndpoint requests endpoint termination. A 404 means the
// endpoint is already gone and is treated as success, which makes
// teardown safe to call twice.
func (c *Client) DeleteEndpoint(ctx context.Context, name string) error {
	data, status, err := c.delete(ctx, "/v1/endpoints/"+name)
	if err != nil {
		return fmt.Errorf("deleting endpoint %s: %w", name, err)
	}

	switch status {
	case http.StatusNoContent, http.StatusOK, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("deleting endpoint %s: status %d: %s", name, status, data)
	}
}
