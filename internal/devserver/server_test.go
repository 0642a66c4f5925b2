package devserver

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/haskel/mlpipe/internal/config"
	"github.com/haskel/mlpipe/internal/dataset"
	"github.com/haskel/mlpipe/internal/logger"
	"github.com/haskel/mlpipe/internal/objectstore"
	"github.com/haskel/mlpipe/internal/platform"
	"github.com/haskel/mlpipe/internal/platform/rest"
)

func newTestServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	srv := New(config.DevServerConfig{
		Host:         "127.0.0.1",
		Port:         9090,
		Token:        token,
		TrainDelayMS: 20,
	}, logger.Discard())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func putRecords(t *testing.T, store objectstore.Store, key string, records []dataset.Record) string {
	t.Helper()
	var b bytes.Buffer
	for _, rec := range records {
		b.WriteString(dataset.FormatFeatureRow(append([]float64{rec.Target}, rec.Features[:]...)))
		b.WriteByte('\n')
	}
	uri, err := store.Put(context.Background(), key, &b, int64(b.Len()))
	if err != nil {
		t.Fatalf("uploading %s: %v", key, err)
	}
	return uri
}

func TestTrainDeployInvokeLifecycle(t *testing.T) {
	store, err := objectstore.NewLocal(t.TempDir(), "boston-housing")
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}

	train := linearRecords(40, 5, 2.0, 1.0)
	validation := linearRecords(12, 5, 2.0, 1.0)
	trainURI := putRecords(t, store, "data/train.csv", train)
	validationURI := putRecords(t, store, "data/validation.csv", validation)

	ts := newTestServer(t, "")
	client := rest.NewClient(ts.URL, "")
	ctx := context.Background()

	if err := client.Health(ctx); err != nil {
		t.Fatalf("health check failed: %v", err)
	}

	spec := platform.TrainingSpec{
		Name:          "job-1",
		TrainURI:      trainURI,
		ValidationURI: validationURI,
		OutputURI:     store.URI("output/job-1"),
		Hyperparameters: platform.Hyperparameters{
			MaxDepth: 5, Eta: 0.2, Objective: "reg:squarederror", NumRound: 3,
		},
	}

	submitted, err := client.SubmitTrainingJob(ctx, spec)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.State.Terminal() {
		t.Errorf("freshly submitted job already terminal: %s", submitted.State)
	}

	// Duplicate submission is rejected.
	if _, err := client.SubmitTrainingJob(ctx, spec); err == nil {
		t.Error("expected error for duplicate job name")
	}

	var logLines []string
	job, err := platform.WaitForTrainingJob(ctx, client, "job-1", 10*time.Millisecond, func(line string) {
		logLines = append(logLines, line)
	})
	if err != nil {
		t.Fatalf("training did not complete: %v", err)
	}
	if job.ArtifactURI == "" {
		t.Fatal("completed job has no artifact locator")
	}
	if len(logLines) == 0 {
		t.Error("expected streamed training logs")
	}
	var sawRound bool
	for _, line := range logLines {
		if strings.Contains(line, "train-rmse") {
			sawRound = true
		}
	}
	if !sawRound {
		t.Errorf("no boosting-round lines in logs: %v", logLines)
	}

	if _, err := client.CreateEndpoint(ctx, platform.EndpointSpec{
		Name:        "ep-1",
		ArtifactURI: job.ArtifactURI,
		Resources:   platform.Resources{InstanceType: "ml.t2.medium", InstanceCount: 1},
	}); err != nil {
		t.Fatalf("create endpoint failed: %v", err)
	}

	ep, err := platform.WaitForEndpoint(ctx, client, "ep-1", 10*time.Millisecond)
	if err != nil {
		t.Fatalf("endpoint did not come up: %v", err)
	}
	if ep.State != platform.EndpointInService {
		t.Fatalf("unexpected endpoint state %s", ep.State)
	}

	// The training data is exactly linear, so predictions must match
	// target = 2x + 1 on the varying feature.
	rows := make([][]float64, 5)
	for i := range rows {
		rows[i] = make([]float64, dataset.NumFeatures)
		for j := range rows[i] {
			rows[i][j] = 1
		}
		rows[i][5] = float64(100 + i)
	}

	predictions, err := client.Invoke(ctx, "ep-1", rows)
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}
	if len(predictions) != len(rows) {
		t.Fatalf("expected %d predictions, got %d", len(rows), len(predictions))
	}
	for i, p := range predictions {
		want := 2*rows[i][5] + 1
		if math.Abs(p-want) > 1e-6 {
			t.Errorf("prediction %d: got %g, want %g", i, p, want)
		}
	}

	// Malformed feature rows are rejected by the endpoint.
	if _, err := client.Invoke(ctx, "ep-1", [][]float64{{1, 2, 3}}); !errors.Is(err, platform.ErrInference) {
		t.Errorf("expected ErrInference for short row, got %v", err)
	}

	if err := client.DeleteEndpoint(ctx, "ep-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := client.GetEndpoint(ctx, "ep-1"); err == nil {
		t.Error("expected error fetching deleted endpoint")
	}
	// Deleting again is still a success.
	if err := client.DeleteEndpoint(ctx, "ep-1"); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
	if _, err := client.Invoke(ctx, "ep-1", rows); !errors.Is(err, platform.ErrInference) {
		t.Errorf("expected ErrInference invoking deleted endpoint, got %v", err)
	}
}

func TestTrainingJobFailsOnMissingData(t *testing.T) {
	ts := newTestServer(t, "")
	client := rest.NewClient(ts.URL, "")
	ctx := context.Background()

	_, err := client.SubmitTrainingJob(ctx, platform.TrainingSpec{
		Name:          "job-bad",
		TrainURI:      "file:///nonexistent/train.csv",
		ValidationURI: "file:///nonexistent/validation.csv",
		OutputURI:     "file:///nonexistent/output",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = platform.WaitForTrainingJob(ctx, client, "job-bad", 10*time.Millisecond, nil)
	if !errors.Is(err, platform.ErrTrainingFailed) {
		t.Errorf("expected ErrTrainingFailed, got %v", err)
	}
}

func TestEndpointFailsOnBadArtifact(t *testing.T) {
	ts := newTestServer(t, "")
	client := rest.NewClient(ts.URL, "")
	ctx := context.Background()

	if _, err := client.CreateEndpoint(ctx, platform.EndpointSpec{
		Name:        "ep-bad",
		ArtifactURI: "file:///nonexistent/model.json",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := platform.WaitForEndpoint(ctx, client, "ep-bad", 10*time.Millisecond)
	if !errors.Is(err, platform.ErrDeploymentFailed) {
		t.Errorf("expected ErrDeploymentFailed, got %v", err)
	}
}

func TestSubmitRejectsIncompleteSpec(t *testing.T) {
	ts := newTestServer(t, "")
	client := rest.NewClient(ts.URL, "")

	_, err := client.SubmitTrainingJob(context.Background(), platform.TrainingSpec{Name: "job-x"})
	if !errors.Is(err, platform.ErrTrainingFailed) {
		t.Errorf("expected ErrTrainingFailed for incomplete spec, got %v", err)
	}
}

func TestBearerAuth(t *testing.T) {
	ts := newTestServer(t, "s3cret")

	// Health is reachable without credentials.
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health returned %d without token", resp.StatusCode)
	}

	// API routes are not.
	ctx := context.Background()
	if _, err := rest.NewClient(ts.URL, "").GetTrainingJob(ctx, "job-1"); err == nil {
		t.Error("expected error without token")
	}
	if _, err := rest.NewClient(ts.URL, "wrong").GetTrainingJob(ctx, "job-1"); err == nil {
		t.Error("expected error with wrong token")
	}

	// The right token gets through to the API (404 for an unknown job,
	// not 401).
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/training-jobs/job-1", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 with valid token, got %d", resp.StatusCode)
	}
}
