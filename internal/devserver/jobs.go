package devserver

import (
	"fmt"
	"io"
	"time"

	"github.com/haskel/mlpipe/internal/dataset"
	"github.com/haskel/mlpipe/internal/objectstore"
	"github.com/haskel/mlpipe/internal/platform"
)

// runJob executes an emulated training job: load the uploaded CSVs,
// fit the regressor, store the artifact at the requested output
// location, and log progress lines along the way.
func (s *Server) runJob(name string) {
	s.setJobState(name, platform.JobInProgress, "", "")
	s.appendLog(name, fmt.Sprintf("starting training job %s", name))

	spec := s.jobSpec(name)
	if spec == nil {
		return
	}

	train, err := loadRows(spec.TrainURI)
	if err != nil {
		s.failJob(name, fmt.Sprintf("loading training data: %v", err))
		return
	}

	validation, err := loadRows(spec.ValidationURI)
	if err != nil {
		s.failJob(name, fmt.Sprintf("loading validation data: %v", err))
		return
	}

	s.appendLog(name, fmt.Sprintf("loaded %d train rows, %d validation rows", len(train), len(validation)))

	artifact, err := FitRegressor(train)
	if err != nil {
		s.failJob(name, fmt.Sprintf("fitting model: %v", err))
		return
	}

	// A handful of fake boosting rounds so log streaming has something
	// realistic to show; the fitted model itself is closed-form.
	rounds := 5
	if spec.Hyperparameters.NumRound > 0 && spec.Hyperparameters.NumRound < rounds {
		rounds = spec.Hyperparameters.NumRound
	}
	for i := 1; i <= rounds; i++ {
		s.appendLog(name, fmt.Sprintf("[%d] train-rmse:%.4f validation-rmse:%.4f",
			i, rmseOf(artifact, train), rmseOf(artifact, validation)))
		time.Sleep(s.trainDelay / time.Duration(rounds+1))
	}

	data, err := artifact.Marshal()
	if err != nil {
		s.failJob(name, fmt.Sprintf("encoding artifact: %v", err))
		return
	}

	artifactURI := spec.OutputURI + "/model.json"
	if err := objectstore.WriteURI(artifactURI, data); err != nil {
		s.failJob(name, fmt.Sprintf("storing artifact: %v", err))
		return
	}

	s.appendLog(name, fmt.Sprintf("training complete, artifact at %s", artifactURI))
	s.setJobState(name, platform.JobCompleted, artifactURI, "")
}

func (s *Server) provisionEndpoint(name, artifactURI string) {
	data, err := readURI(artifactURI)
	if err != nil {
		s.failEndpoint(name, fmt.Sprintf("loading artifact: %v", err))
		return
	}

	artifact, err := UnmarshalArtifact(data)
	if err != nil {
		s.failEndpoint(name, fmt.Sprintf("parsing artifact: %v", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ep, ok := s.endpoints[name]
	if !ok {
		// Deleted while provisioning; nothing to serve.
		return
	}
	ep.artifact = artifact
	ep.State = platform.EndpointInService
}

func (s *Server) jobSpec(name string) *platform.TrainingSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[name]
	if !ok {
		return nil
	}
	spec := j.spec
	return &spec
}

func (s *Server) setJobState(name string, st platform.JobState, artifactURI, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[name]; ok {
		j.State = st
		j.ArtifactURI = artifactURI
		j.FailureReason = reason
	}
}

func (s *Server) failJob(name, reason string) {
	s.appendLog(name, "error: "+reason)
	s.setJobState(name, platform.JobFailed, "", reason)
	s.logger.Warn("training job failed", "job", name, "reason", reason)
}

func (s *Server) failEndpoint(name, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ep, ok := s.endpoints[name]; ok {
		ep.State = platform.EndpointFailed
		ep.FailureReason = reason
	}
}

func (s *Server) appendLog(name, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[name]; ok {
		j.logs = append(j.logs, line)
	}
}

func loadRows(uri string) ([]dataset.Record, error) {
	data, err := readURI(uri)
	if err != nil {
		return nil, err
	}
	return dataset.ParseRows(string(data))
}

func readURI(uri string) ([]byte, error) {
	r, err := objectstore.OpenURI(uri)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func rmseOf(a *Artifact, records []dataset.Record) float64 {
	predictions := make([]float64, len(records))
	for i, rec := range records {
		features := rec.Features
		predictions[i] = a.Predict(features[:])
	}
	return dataset.RMSE(predictions, records)
}
