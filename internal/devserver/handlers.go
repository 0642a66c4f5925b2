package devserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/haskel/mlpipe/internal/dataset"
	"github.com/haskel/mlpipe/internal/platform"
)

type healthResponse struct {
	Status string `json:"status"`
}

type logsResponse struct {
	Lines []string `json:"lines"`
	Next  int      `json:"next"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	var spec platform.TrainingSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if spec.Name == "" || spec.TrainURI == "" || spec.ValidationURI == "" || spec.OutputURI == "" {
		http.Error(w, "name, train_uri, validation_uri and output_uri are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if _, exists := s.jobs[spec.Name]; exists {
		s.mu.Unlock()
		http.Error(w, fmt.Sprintf("training job %q already exists", spec.Name), http.StatusConflict)
		return
	}

	j := &job{
		TrainingJob: platform.TrainingJob{
			Name:  spec.Name,
			State: platform.JobPending,
		},
		spec: spec,
	}
	s.jobs[spec.Name] = j
	s.mu.Unlock()

	s.logger.Info("training job accepted", "job", spec.Name, "train", spec.TrainURI)
	go s.runJob(spec.Name)

	s.writeJSON(w, http.StatusCreated, j.TrainingJob)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	s.mu.RLock()
	j, ok := s.jobs[name]
	if !ok {
		s.mu.RUnlock()
		http.Error(w, "training job not found", http.StatusNotFound)
		return
	}
	view := j.TrainingJob
	s.mu.RUnlock()

	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleJobLogs(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	from := 0
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid from offset", http.StatusBadRequest)
			return
		}
		from = parsed
	}

	s.mu.RLock()
	j, ok := s.jobs[name]
	if !ok {
		s.mu.RUnlock()
		http.Error(w, "training job not found", http.StatusNotFound)
		return
	}

	var lines []string
	if from < len(j.logs) {
		lines = append(lines, j.logs[from:]...)
	}
	next := len(j.logs)
	s.mu.RUnlock()

	s.writeJSON(w, http.StatusOK, logsResponse{Lines: lines, Next: next})
}

func (s *Server) handleCreateEndpoint(w http.ResponseWriter, r *http.Request) {
	var spec platform.EndpointSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if spec.Name == "" || spec.ArtifactURI == "" {
		http.Error(w, "name and artifact_uri are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if _, exists := s.endpoints[spec.Name]; exists {
		s.mu.Unlock()
		http.Error(w, fmt.Sprintf("endpoint %q already exists", spec.Name), http.StatusConflict)
		return
	}

	ep := &endpoint{
		Endpoint: platform.Endpoint{
			Name:  spec.Name,
			State: platform.EndpointCreating,
		},
	}
	s.endpoints[spec.Name] = ep
	s.mu.Unlock()

	s.logger.Info("endpoint accepted", "endpoint", spec.Name, "artifact", spec.ArtifactURI)
	go s.provisionEndpoint(spec.Name, spec.ArtifactURI)

	s.writeJSON(w, http.StatusCreated, ep.Endpoint)
}

func (s *Server) handleGetEndpoint(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	s.mu.RLock()
	ep, ok := s.endpoints[name]
	if !ok {
		s.mu.RUnlock()
		http.Error(w, "endpoint not found", http.StatusNotFound)
		return
	}
	view := ep.Endpoint
	s.mu.RUnlock()

	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteEndpoint(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	s.mu.Lock()
	_, ok := s.endpoints[name]
	if !ok {
		s.mu.Unlock()
		http.Error(w, "endpoint not found", http.StatusNotFound)
		return
	}
	delete(s.endpoints, name)
	s.mu.Unlock()

	s.logger.Info("endpoint deleted", "endpoint", name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	s.mu.RLock()
	ep, ok := s.endpoints[name]
	var artifact *Artifact
	var st platform.EndpointState
	if ok {
		artifact = ep.artifact
		st = ep.State
	}
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "endpoint not found", http.StatusNotFound)
		return
	}
	if st != platform.EndpointInService || artifact == nil {
		http.Error(w, fmt.Sprintf("endpoint is %s, not in service", st), http.StatusConflict)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	rows, err := parseFeatureRows(string(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%g\n", artifact.Predict(row))
	}

	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}

// parseFeatureRows parses the invocation payload: one CSV line of 13
// feature values per row, no target column, no header.
func parseFeatureRows(body string) ([][]float64, error) {
	var rows [][]float64

	for i, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != dataset.NumFeatures {
			return nil, fmt.Errorf("line %d: expected %d feature values, got %d", i+1, dataset.NumFeatures, len(fields))
		}

		row := make([]float64, len(fields))
		for j, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d field %d: %v", i+1, j+1, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
